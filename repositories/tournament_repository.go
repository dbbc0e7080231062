package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/courtside/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentActiveConflict = errors.New("another tournament is already active")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int, forUpdate bool) (*models.Tournament, error)
	GetActive(ctx context.Context) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	UpdateState(ctx context.Context, exec SQLExecutor, t *models.Tournament) error
	Complete(ctx context.Context, exec SQLExecutor, id int, completedAt time.Time, summary []byte, summaryKey *string) error
	CountCompleted(ctx context.Context) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, tournament_date, format, target_type, target_value, courts,
	bracket, log, status, summary_key, created_at, completed_at`

func scanTournament(row interface{ Scan(dest ...interface{}) error }) (*models.Tournament, error) {
	var (
		t           models.Tournament
		bracketJSON []byte
		logJSON     []byte
		completedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Date, &t.Format, &t.TargetType, &t.TargetValue, pq.Array(&t.Courts),
		&bracketJSON, &logJSON, &t.Status, &t.SummaryKey, &t.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(bracketJSON, &t.Bracket); err != nil {
		return nil, fmt.Errorf("failed to decode bracket of tournament %d: %w", t.ID, err)
	}
	if len(logJSON) > 0 {
		if err := json.Unmarshal(logJSON, &t.Log); err != nil {
			return nil, fmt.Errorf("failed to decode log of tournament %d: %w", t.ID, err)
		}
	}
	if t.Log == nil {
		t.Log = []models.MatchLogEntry{}
	}
	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	return &t, nil
}

func encodeState(t *models.Tournament) ([]byte, []byte, error) {
	bracketJSON, err := json.Marshal(t.Bracket)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode bracket: %w", err)
	}
	entries := t.Log
	if entries == nil {
		entries = []models.MatchLogEntry{}
	}
	logJSON, err := json.Marshal(entries)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode match log: %w", err)
	}
	return bracketJSON, logJSON, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	bracketJSON, logJSON, err := encodeState(t)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tournaments (name, tournament_date, format, target_type, target_value, courts, bracket, log, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err = executor(r.db, exec).QueryRowContext(ctx, query,
		t.Name, t.Date, t.Format, t.TargetType, t.TargetValue, pq.Array(t.Courts),
		bracketJSON, logJSON, t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return nil
}

// GetByID loads a tournament. With forUpdate the row stays locked until exec's transaction ends.
func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int, forUpdate bool) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	t, err := scanTournament(executor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament by id %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetActive(ctx context.Context) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE status = $1 LIMIT 1`

	t, err := scanTournament(r.db.QueryRowContext(ctx, query, models.StatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan active tournament: %w", err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY tournament_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

// UpdateState persists the bracket and the match log.
func (r *postgresTournamentRepository) UpdateState(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	bracketJSON, logJSON, err := encodeState(t)
	if err != nil {
		return err
	}

	result, err := executor(r.db, exec).ExecContext(ctx,
		`UPDATE tournaments SET bracket = $1, log = $2 WHERE id = $3`,
		bracketJSON, logJSON, t.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateState: failed to execute query for tournament %d: %w", t.ID, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Complete(ctx context.Context, exec SQLExecutor, id int, completedAt time.Time, summary []byte, summaryKey *string) error {
	query := `
		UPDATE tournaments
		SET status = $1, completed_at = $2, summary = $3, summary_key = $4
		WHERE id = $5`

	result, err := executor(r.db, exec).ExecContext(ctx, query,
		models.StatusCompleted, completedAt, summary, summaryKey, id,
	)
	if err != nil {
		return fmt.Errorf("Complete: failed to execute query for tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) CountCompleted(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments WHERE status = $1`, models.StatusCompleted).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tournaments: %w", err)
	}
	return n, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "tournaments_one_active_idx" {
				return ErrTournamentActiveConflict
			}
		}
	}
	return err
}
