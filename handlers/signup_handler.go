package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/courtside/models"
	"github.com/Dosada05/courtside/services"
	"github.com/go-chi/chi/v5"
)

type SignupHandler struct {
	signupService services.SignupService
}

func NewSignupHandler(ss services.SignupService) *SignupHandler {
	return &SignupHandler{signupService: ss}
}

// List обрабатывает GET /signups?date=YYYY-MM-DD
func (h *SignupHandler) List(w http.ResponseWriter, r *http.Request) {
	day, err := h.signupService.ListSignups(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"signup_day": day}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublicList обрабатывает GET /public/signups?date=YYYY-MM-DD.
// Contact details are only shown to admins.
func (h *SignupHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	day, err := h.signupService.ListSignups(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	public := *day
	public.Signups = make([]models.Signup, len(day.Signups))
	for i, su := range day.Signups {
		su.Contact = nil
		public.Signups[i] = su
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"signup_day": public}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCheckedIn обрабатывает GET /signups/checked-in?date=YYYY-MM-DD
func (h *SignupHandler) ListCheckedIn(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	signups, err := h.signupService.ListCheckedIn(r.Context(), date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"date": date, "signups": signups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SignupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.AddSignupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !validateInput(w, r, input) {
		return
	}

	signup, err := h.signupService.AddSignup(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"signup": signup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SignupHandler) SetCheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "signupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		CheckedIn *bool `json:"checked_in"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.CheckedIn == nil {
		badRequestResponse(w, r, errors.New("checked_in is required"))
		return
	}

	signup, err := h.signupService.SetCheckIn(r.Context(), id, *input.CheckedIn)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"signup": signup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SignupHandler) SetSkill(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "signupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Skill int `json:"skill"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	signup, err := h.signupService.SetSkill(r.Context(), id, input.Skill)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"signup": signup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetClosed обрабатывает PUT /signup-dates/{date}
func (h *SignupHandler) SetClosed(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	var input struct {
		Closed *bool `json:"closed"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Closed == nil {
		badRequestResponse(w, r, errors.New("closed is required"))
		return
	}

	if err := h.signupService.SetSignupsClosed(r.Context(), date, *input.Closed); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"date": date, "closed": *input.Closed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SignupHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	from := chi.URLParam(r, "date")
	var input struct {
		ToDate string `json:"to_date"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	n, err := h.signupService.DuplicateSignups(r.Context(), from, input.ToDate)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"copied": n}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
