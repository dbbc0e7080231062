package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/courtside/brackets"
	"github.com/Dosada05/courtside/metrics"
	"github.com/Dosada05/courtside/models"
	"github.com/Dosada05/courtside/realtime"
	"github.com/Dosada05/courtside/repositories"
	"github.com/Dosada05/courtside/storage"
	"github.com/Dosada05/courtside/utils"
)

const (
	defaultTournamentName = "Tournament"
	defaultTargetPoints   = 11
)

// Notifier pushes a message to everyone watching a room.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error)
	GetCurrent(ctx context.Context) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	AssignMatch(ctx context.Context, tournamentID, matchID int, court string) (*models.Tournament, error)
	FinishMatch(ctx context.Context, tournamentID, matchID int, input FinishMatchInput) (*models.Tournament, error)
	CompleteTournament(ctx context.Context, tournamentID int) (*models.Tournament, error)
}

type CreateTournamentInput struct {
	Name        string            `json:"name" validate:"max=100"`
	Date        string            `json:"date"`
	Format      brackets.Format   `json:"format"`
	TargetType  models.TargetType `json:"target_type"`
	TargetValue int               `json:"target_value" validate:"gte=0"`
	Courts      []string          `json:"courts" validate:"max=16,dive,max=50"`
}

type FinishMatchInput struct {
	Score  string `json:"score" validate:"max=32"`
	Winner string `json:"winner" validate:"required,max=100"`
}

// TournamentView is a tournament together with everything derived from its bracket.
type TournamentView struct {
	Tournament *models.Tournament  `json:"tournament"`
	Courts     []brackets.CourtSlot `json:"courts"`
	Pending    []brackets.Match     `json:"pending"`
	Active     []brackets.Match     `json:"active"`
	Champion   *string              `json:"champion,omitempty"`
}

func NewTournamentView(t *models.Tournament) *TournamentView {
	view := &TournamentView{
		Tournament: t,
		Courts:     brackets.CourtAllocation(t.Bracket, t.Courts),
		Pending:    t.Bracket.PendingMatches(),
		Active:     t.Bracket.ActiveMatches(),
	}
	if t.Format.IsElimination() {
		if champion, ok := t.Bracket.Champion(); ok {
			view.Champion = &champion
		}
	}
	return view
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	signupRepo     repositories.SignupRepository
	txManager      repositories.TxManager
	uploader       storage.FileUploader // nil when archiving is disabled
	notifier       Notifier
	defaultCourts  []string
	logger         *slog.Logger
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	signupRepo repositories.SignupRepository,
	txManager repositories.TxManager,
	uploader storage.FileUploader,
	notifier Notifier,
	defaultCourts []string,
	logger *slog.Logger,
	m *metrics.Metrics,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		signupRepo:     signupRepo,
		txManager:      txManager,
		uploader:       uploader,
		notifier:       notifier,
		defaultCourts:  defaultCourts,
		logger:         logger,
		metrics:        m,
		now:            time.Now,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	t, err := s.prepareTournament(input)
	if err != nil {
		return nil, err
	}

	checkedIn, err := s.signupRepo.ListByDate(ctx, t.Date, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list checked-in players: %w", err)
	}
	entrants := make([]string, 0, len(checkedIn))
	seen := make(map[string]bool, len(checkedIn))
	var duplicates []string
	for _, su := range checkedIn {
		// Names are the bracket labels, so two players with one name could not be told apart.
		if seen[su.Name] {
			duplicates = append(duplicates, su.Name)
		}
		seen[su.Name] = true
		entrants = append(entrants, su.Name)
	}
	if len(entrants) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrNotEnoughEntrants, len(entrants))
	}
	if len(duplicates) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntrants, strings.Join(duplicates, ", "))
	}

	t.Bracket = brackets.Generate(t.Format, entrants)

	if err := s.tournamentRepo.Create(ctx, nil, t); err != nil {
		return nil, s.mapTournamentError(err)
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", t.ID),
		slog.String("date", t.Date),
		slog.String("format", string(t.Format)),
		slog.Int("entrants", len(entrants)),
		slog.Int("matches", t.Bracket.MatchCount()),
	)
	s.metrics.TournamentCreated(string(t.Format))
	s.notify(t)
	return t, nil
}

func (s *tournamentService) prepareTournament(input CreateTournamentInput) (*models.Tournament, error) {
	name := utils.NormalizeName(input.Name)
	if name == "" {
		name = defaultTournamentName
	}

	date := utils.Today(s.now())
	if strings.TrimSpace(input.Date) != "" {
		d, err := normalizeDate(input.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	format := input.Format
	if format == "" {
		format = brackets.FormatSingle
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", brackets.ErrUnknownFormat, format)
	}

	targetType, targetValue := input.TargetType, input.TargetValue
	if targetType == "" {
		targetType = models.TargetPoints
		if targetValue == 0 {
			targetValue = defaultTargetPoints
		}
	}
	if (targetType != models.TargetPoints && targetType != models.TargetTime) || targetValue <= 0 {
		return nil, ErrInvalidTarget
	}

	courts := cleanCourts(input.Courts)
	if len(courts) == 0 {
		courts = cleanCourts(s.defaultCourts)
	}
	if len(courts) == 0 {
		return nil, ErrNoCourts
	}

	return &models.Tournament{
		Name:        name,
		Date:        date,
		Format:      format,
		TargetType:  targetType,
		TargetValue: targetValue,
		Courts:      courts,
		Log:         []models.MatchLogEntry{},
		Status:      models.StatusActive,
	}, nil
}

// cleanCourts trims court names and drops blanks and duplicates, keeping the first occurrence.
func cleanCourts(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = utils.NormalizeName(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (s *tournamentService) GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID, false)
	if err != nil {
		return nil, s.mapTournamentError(err)
	}
	s.populateSummaryURL(t)
	return t, nil
}

func (s *tournamentService) GetCurrent(ctx context.Context) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrNoActiveTournament
		}
		return nil, fmt.Errorf("failed to load current tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	list, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for _, t := range list {
		s.populateSummaryURL(t)
	}
	return list, nil
}

// AssignMatch sends a ready match to a free court of the tournament.
func (s *tournamentService) AssignMatch(ctx context.Context, tournamentID, matchID int, court string) (*models.Tournament, error) {
	court = strings.TrimSpace(court)
	t, err := s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		if err := brackets.ValidateAssignment(t.Bracket, matchID, court, t.Courts); err != nil {
			return err
		}
		t.Bracket = brackets.AssignToCourt(t.Bracket, matchID, court)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.MatchAssigned()
	s.logger.Info("match assigned",
		slog.Int("tournament_id", t.ID), slog.Int("match_id", matchID), slog.String("court", court))
	return t, nil
}

// FinishMatch records the result of a match in play. In elimination formats
// the winner moves on to the next round; round robin has no next slot to fill.
func (s *tournamentService) FinishMatch(ctx context.Context, tournamentID, matchID int, input FinishMatchInput) (*models.Tournament, error) {
	winner := strings.TrimSpace(input.Winner)
	score := strings.TrimSpace(input.Score)

	t, err := s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		if err := brackets.ValidateCompletion(t.Bracket, matchID, winner); err != nil {
			return err
		}

		next := brackets.EndMatch(t.Bracket, matchID, score, winner)
		if t.Format.IsElimination() {
			next = brackets.AdvanceWinner(next, matchID, winner)
		}
		t.Bracket = next

		entry := models.MatchLogEntry{
			Timestamp: s.now().UTC(),
			MatchID:   matchID,
			Winner:    winner,
		}
		if score != "" {
			entry.Score = &score
		}
		t.Log = append([]models.MatchLogEntry{entry}, t.Log...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.MatchFinished(string(t.Format))
	s.logger.Info("match finished",
		slog.Int("tournament_id", t.ID), slog.Int("match_id", matchID), slog.String("winner", winner))
	return t, nil
}

// CompleteTournament closes the tournament and archives its summary.
// A failed upload is logged; the summary is still kept in the database.
func (s *tournamentService) CompleteTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	var (
		completed   *models.Tournament
		uploadedKey *string
	)
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetByID(ctx, exec, tournamentID, true)
		if err != nil {
			return err
		}
		if t.Status != models.StatusActive {
			return ErrTournamentNotActive
		}

		completedAt := s.now().UTC()
		summary := buildSummary(t, completedAt)
		data, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}

		summaryKey := s.archiveSummary(ctx, t, data)
		uploadedKey = summaryKey
		if err := s.tournamentRepo.Complete(ctx, exec, t.ID, completedAt, data, summaryKey); err != nil {
			return err
		}

		t.Status = models.StatusCompleted
		t.CompletedAt = &completedAt
		t.SummaryKey = summaryKey
		completed = t
		return nil
	})
	if err != nil {
		if uploadedKey != nil {
			if delErr := s.uploader.Delete(ctx, *uploadedKey); delErr != nil {
				s.logger.Warn("failed to remove orphaned summary", slog.String("key", *uploadedKey), slog.Any("error", delErr))
			}
		}
		return nil, s.mapTournamentError(err)
	}

	s.populateSummaryURL(completed)
	s.metrics.TournamentCompleted()
	s.logger.Info("tournament completed", slog.Int("tournament_id", completed.ID))
	s.notify(completed)
	return completed, nil
}

func buildSummary(t *models.Tournament, completedAt time.Time) models.TournamentSummary {
	summary := models.TournamentSummary{
		TournamentID: t.ID,
		Name:         t.Name,
		Date:         t.Date,
		Format:       t.Format,
		Courts:       t.Courts,
		Rounds:       t.Bracket.Rounds,
		Log:          t.Log,
		CompletedAt:  completedAt,
	}
	if summary.Rounds == nil {
		summary.Rounds = []brackets.Round{}
	}
	if t.Format.IsElimination() {
		if champion, ok := t.Bracket.Champion(); ok {
			summary.Champion = &champion
		}
	}
	return summary
}

func summaryKey(t *models.Tournament) string {
	return fmt.Sprintf("summaries/%s/%d.json", t.Date, t.ID)
}

func (s *tournamentService) archiveSummary(ctx context.Context, t *models.Tournament, data []byte) *string {
	if s.uploader == nil {
		return nil
	}
	key := summaryKey(t)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(data))
	s.metrics.SummaryUploaded(err)
	if err != nil {
		s.logger.Error("summary upload failed",
			slog.Int("tournament_id", t.ID), slog.String("key", key), slog.Any("error", err))
		return nil
	}
	return &result.Key
}

func (s *tournamentService) populateSummaryURL(t *models.Tournament) {
	if t != nil && t.SummaryKey != nil && *t.SummaryKey != "" && s.uploader != nil {
		if url := s.uploader.GetPublicURL(*t.SummaryKey); url != "" {
			t.SummaryURL = &url
		}
	}
}

// mutate loads the tournament locked for update, applies fn and saves the
// new bracket and log in the same transaction.
func (s *tournamentService) mutate(ctx context.Context, tournamentID int, fn func(t *models.Tournament) error) (*models.Tournament, error) {
	var updated *models.Tournament
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetByID(ctx, exec, tournamentID, true)
		if err != nil {
			return err
		}
		if t.Status != models.StatusActive {
			return ErrTournamentNotActive
		}
		if err := fn(t); err != nil {
			return err
		}
		if err := s.tournamentRepo.UpdateState(ctx, exec, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, s.mapTournamentError(err)
	}

	s.notify(updated)
	return updated, nil
}

func (s *tournamentService) notify(t *models.Tournament) {
	if s.notifier == nil {
		return
	}
	room := realtime.RoomName(t.ID)
	s.notifier.BroadcastToRoom(room, realtime.Message{
		Type:    realtime.TournamentUpdated,
		Payload: NewTournamentView(t),
		RoomID:  room,
	})
}

func (s *tournamentService) mapTournamentError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentActiveConflict):
		return ErrActiveTournamentExists
	case errors.Is(err, ErrTournamentNotActive),
		errors.Is(err, brackets.ErrMatchNotFound),
		errors.Is(err, brackets.ErrUnknownCourt),
		errors.Is(err, brackets.ErrCourtOccupied),
		errors.Is(err, brackets.ErrInvalidTransition),
		errors.Is(err, brackets.ErrInvalidWinner):
		return err
	default:
		return fmt.Errorf("tournament operation failed: %w", err)
	}
}
