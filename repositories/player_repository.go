package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/courtside/models"
	"github.com/lib/pq"
)

var ErrPlayerNameInvalid = errors.New("player name violates constraint")

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	CreateMany(ctx context.Context, exec SQLExecutor, names []string) (int, error)
	List(ctx context.Context) ([]*models.Player, error)
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (name, rating, notes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Rating, p.Notes).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return nil
}

// CreateMany inserts one player per name. Pass a transaction to make the import all-or-nothing.
func (r *postgresPlayerRepository) CreateMany(ctx context.Context, exec SQLExecutor, names []string) (int, error) {
	ex := executor(r.db, exec)
	inserted := 0
	for _, name := range names {
		if _, err := ex.ExecContext(ctx, `INSERT INTO players (name) VALUES ($1)`, name); err != nil {
			return inserted, fmt.Errorf("failed to import player %q: %w", name, r.handlePlayerError(err))
		}
		inserted++
	}
	return inserted, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := `SELECT id, name, rating, notes, created_at FROM players ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Rating, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23502" { // not_null_violation
		return ErrPlayerNameInvalid
	}
	return err
}
