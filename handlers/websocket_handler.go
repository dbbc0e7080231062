package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Dosada05/courtside/realtime"
	"github.com/Dosada05/courtside/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub               *realtime.Hub
	tournamentService services.TournamentService
	upgrader          websocket.Upgrader
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" allows any origin.
func NewWebSocketHandler(hub *realtime.Hub, ts services.TournamentService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWs обрабатывает WebSocket запросы для конкретного турнира.
// Клиент должен подключаться к /ws/tournaments/{tournamentID}
// and receives the current state right away, then TOURNAMENT_UPDATED after every change.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.tournamentService.GetTournament(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту
		log.Printf("Failed to upgrade connection for tournament %d: %v", tournamentID, err)
		return
	}

	room := realtime.RoomName(tournamentID)
	client := realtime.NewClient(h.hub, conn, room)

	if !h.hub.Join(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	// Снимок читается уже после Join: изменение, сделанное позже, придёт рассылкой.
	h.sendSnapshot(r, client, tournamentID)

	go client.WritePump()
	go client.ReadPump()
}

func (h *WebSocketHandler) sendSnapshot(r *http.Request, client *realtime.Client, tournamentID int) {
	tournament, err := h.tournamentService.GetTournament(r.Context(), tournamentID)
	if err != nil {
		log.Printf("Failed to load snapshot for tournament %d: %v", tournamentID, err)
		return
	}
	snapshot, err := json.Marshal(realtime.Message{
		Type:    realtime.TournamentUpdated,
		Payload: services.NewTournamentView(tournament),
		RoomID:  client.Room,
	})
	if err != nil {
		log.Printf("Failed to encode snapshot for tournament %d: %v", tournamentID, err)
		return
	}
	client.SendSnapshot(snapshot)
}
