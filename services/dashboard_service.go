package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/courtside/models"
	"github.com/Dosada05/courtside/repositories"
	"github.com/Dosada05/courtside/utils"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context, date string) (models.DashboardStats, error)
}

type dashboardService struct {
	playerRepo     repositories.PlayerRepository
	signupRepo     repositories.SignupRepository
	tournamentRepo repositories.TournamentRepository
	now            func() time.Time
}

func NewDashboardService(
	playerRepo repositories.PlayerRepository,
	signupRepo repositories.SignupRepository,
	tournamentRepo repositories.TournamentRepository,
) DashboardService {
	return &dashboardService{
		playerRepo:     playerRepo,
		signupRepo:     signupRepo,
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

// GetStats loads the admin overview for date (today when empty). The counters are fetched in parallel.
func (s *dashboardService) GetStats(ctx context.Context, date string) (models.DashboardStats, error) {
	if date == "" {
		date = utils.Today(s.now())
	} else {
		d, err := normalizeDate(date)
		if err != nil {
			return models.DashboardStats{}, err
		}
		date = d
	}

	stats := models.DashboardStats{Date: date}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.playerRepo.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count players: %w", err)
		}
		stats.PlayersTotal = n
		return nil
	})

	g.Go(func() error {
		total, checkedIn, err := s.signupRepo.CountByDate(gCtx, date)
		if err != nil {
			return fmt.Errorf("failed to count signups: %w", err)
		}
		stats.SignupsTotal = total
		stats.CheckedInTotal = checkedIn
		return nil
	})

	g.Go(func() error {
		closed, err := s.signupRepo.IsClosed(gCtx, date)
		if err != nil {
			return fmt.Errorf("failed to read signup state: %w", err)
		}
		stats.SignupClosed = closed
		return nil
	})

	g.Go(func() error {
		n, err := s.tournamentRepo.CountCompleted(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count tournaments: %w", err)
		}
		stats.TournamentsPlayed = n
		return nil
	})

	g.Go(func() error {
		current, err := s.tournamentRepo.GetActive(gCtx)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load current tournament: %w", err)
		}
		stats.Current = current
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
