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

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	AddPlayer(ctx context.Context, input AddPlayerInput) (*models.Player, error)
	ImportPlayers(ctx context.Context, text string) (int, error)
}

type AddPlayerInput struct {
	Name   string   `json:"name" validate:"max=100"`
	Rating *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Notes  *string  `json:"notes" validate:"omitempty,max=500"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	txManager  repositories.TxManager
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	txManager repositories.TxManager,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) AddPlayer(ctx context.Context, input AddPlayerInput) (*models.Player, error) {
	name := utils.NormalizeName(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{
		Name:   name,
		Rating: input.Rating,
		Notes:  input.Notes,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameInvalid) {
			return nil, ErrPlayerNameRequired
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// ImportPlayers adds every non-blank name from text in one transaction and returns how many were added.
func (s *playerService) ImportPlayers(ctx context.Context, text string) (int, error) {
	names := utils.SplitNames(text)
	if len(names) == 0 {
		return 0, fmt.Errorf("%w: no names to import", ErrValidationFailed)
	}

	var imported int
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		n, err := s.playerRepo.CreateMany(ctx, exec, names)
		if err != nil {
			return err
		}
		imported = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import players: %w", err)
	}

	s.logger.Info("players imported", slog.Int("count", imported))
	return imported, nil
}
