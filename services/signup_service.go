package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/courtside/models"
	"github.com/Dosada05/courtside/repositories"
	"github.com/Dosada05/courtside/utils"
)

type SignupService interface {
	ListSignups(ctx context.Context, date string) (*models.SignupDay, error)
	ListCheckedIn(ctx context.Context, date string) ([]models.Signup, error)
	AddSignup(ctx context.Context, input AddSignupInput) (*models.Signup, error)
	SetCheckIn(ctx context.Context, signupID int, checkedIn bool) (*models.Signup, error)
	SetSkill(ctx context.Context, signupID int, skill int) (*models.Signup, error)
	SetSignupsClosed(ctx context.Context, date string, closed bool) error
	DuplicateSignups(ctx context.Context, fromDate, toDate string) (int, error)
}

type AddSignupInput struct {
	Name           string  `json:"name" validate:"max=100"`
	Contact        *string `json:"contact" validate:"omitempty,max=200"`
	TournamentDate string  `json:"tournament_date"`
	Skill          int     `json:"skill"` // out of range falls back to the default
}

type signupService struct {
	signupRepo repositories.SignupRepository
	txManager  repositories.TxManager
	logger     *slog.Logger
}

func NewSignupService(
	signupRepo repositories.SignupRepository,
	txManager repositories.TxManager,
	logger *slog.Logger,
) SignupService {
	return &signupService{
		signupRepo: signupRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func validSkill(skill int) bool {
	return skill >= models.SkillBeginner && skill <= models.SkillAdvanced
}

func normalizeDate(date string) (string, error) {
	d, err := utils.NormalizeDate(date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return d, nil
}

func (s *signupService) ListSignups(ctx context.Context, date string) (*models.SignupDay, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	signups, err := s.signupRepo.ListByDate(ctx, date, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}
	closed, err := s.signupRepo.IsClosed(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read signup state: %w", err)
	}

	day := &models.SignupDay{
		Date:    date,
		Closed:  closed,
		Signups: make([]models.Signup, len(signups)),
	}
	for i, su := range signups {
		day.Signups[i] = *su
		if su.CheckedIn {
			day.CheckedIn++
		}
	}
	return day, nil
}

// ListCheckedIn returns the players present on date, ordered by name. They are the entrants of a new bracket.
func (s *signupService) ListCheckedIn(ctx context.Context, date string) ([]models.Signup, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	signups, err := s.signupRepo.ListByDate(ctx, date, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list checked-in signups: %w", err)
	}
	out := make([]models.Signup, len(signups))
	for i, su := range signups {
		out[i] = *su
	}
	return out, nil
}

// AddSignup registers a player for a date. An out-of-range skill falls back to the default.
func (s *signupService) AddSignup(ctx context.Context, input AddSignupInput) (*models.Signup, error) {
	name := utils.NormalizeName(input.Name)
	if name == "" {
		return nil, ErrSignupNameRequired
	}
	date, err := normalizeDate(input.TournamentDate)
	if err != nil {
		return nil, err
	}

	closed, err := s.signupRepo.IsClosed(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read signup state: %w", err)
	}
	if closed {
		return nil, ErrSignupClosed
	}

	skill := input.Skill
	if !validSkill(skill) {
		skill = models.DefaultSkill
	}

	var contact *string
	if input.Contact != nil {
		if c := utils.NormalizeName(*input.Contact); c != "" {
			contact = &c
		}
	}

	signup := &models.Signup{
		Name:           name,
		Contact:        contact,
		TournamentDate: date,
		Skill:          skill,
	}
	if err := s.signupRepo.Create(ctx, signup); err != nil {
		return nil, fmt.Errorf("failed to create signup: %w", err)
	}
	return signup, nil
}

func (s *signupService) SetCheckIn(ctx context.Context, signupID int, checkedIn bool) (*models.Signup, error) {
	if err := s.signupRepo.UpdateCheckIn(ctx, signupID, checkedIn); err != nil {
		return nil, s.mapSignupError(err, "update check-in")
	}
	return s.get(ctx, signupID)
}

func (s *signupService) SetSkill(ctx context.Context, signupID int, skill int) (*models.Signup, error) {
	if !validSkill(skill) {
		return nil, ErrInvalidSkill
	}
	if err := s.signupRepo.UpdateSkill(ctx, signupID, skill); err != nil {
		return nil, s.mapSignupError(err, "update skill")
	}
	return s.get(ctx, signupID)
}

func (s *signupService) SetSignupsClosed(ctx context.Context, date string, closed bool) error {
	date, err := normalizeDate(date)
	if err != nil {
		return err
	}
	if err := s.signupRepo.SetClosed(ctx, date, closed); err != nil {
		return fmt.Errorf("failed to update signup state: %w", err)
	}
	s.logger.Info("signup state changed", slog.String("date", date), slog.Bool("closed", closed))
	return nil
}

// DuplicateSignups copies a date's sheet onto another date, nobody checked in.
func (s *signupService) DuplicateSignups(ctx context.Context, fromDate, toDate string) (int, error) {
	from, err := normalizeDate(fromDate)
	if err != nil {
		return 0, err
	}
	to, err := normalizeDate(toDate)
	if err != nil {
		return 0, err
	}
	if from == to {
		return 0, ErrSameDate
	}

	var copied int
	err = s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		n, err := s.signupRepo.CopyToDate(ctx, exec, from, to)
		if err != nil {
			return err
		}
		copied = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to duplicate signups: %w", err)
	}

	s.logger.Info("signups duplicated", slog.String("from", from), slog.String("to", to), slog.Int("count", copied))
	return copied, nil
}

func (s *signupService) get(ctx context.Context, signupID int) (*models.Signup, error) {
	signup, err := s.signupRepo.GetByID(ctx, signupID)
	if err != nil {
		return nil, s.mapSignupError(err, "load signup")
	}
	return signup, nil
}

func (s *signupService) mapSignupError(err error, action string) error {
	switch {
	case errors.Is(err, repositories.ErrSignupNotFound):
		return ErrSignupNotFound
	case errors.Is(err, repositories.ErrSignupSkillInvalid):
		return ErrInvalidSkill
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}
