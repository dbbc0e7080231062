package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/courtside/models"
	"github.com/lib/pq"
)

var (
	ErrSignupNotFound     = errors.New("signup not found")
	ErrSignupSkillInvalid = errors.New("signup skill violates constraint")
)

type SignupRepository interface {
	Create(ctx context.Context, s *models.Signup) error
	GetByID(ctx context.Context, id int) (*models.Signup, error)
	ListByDate(ctx context.Context, date string, checkedInOnly bool) ([]*models.Signup, error)
	CountByDate(ctx context.Context, date string) (total int, checkedIn int, err error)
	UpdateCheckIn(ctx context.Context, id int, checkedIn bool) error
	UpdateSkill(ctx context.Context, id int, skill int) error
	CopyToDate(ctx context.Context, exec SQLExecutor, fromDate, toDate string) (int, error)

	IsClosed(ctx context.Context, date string) (bool, error)
	SetClosed(ctx context.Context, date string, closed bool) error
}

type postgresSignupRepository struct {
	db *sql.DB
}

func NewPostgresSignupRepository(db *sql.DB) SignupRepository {
	return &postgresSignupRepository{db: db}
}

const signupColumns = `id, name, contact, tournament_date, skill, checked_in, created_at`

func scanSignup(row interface{ Scan(dest ...interface{}) error }) (*models.Signup, error) {
	var s models.Signup
	err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.TournamentDate, &s.Skill, &s.CheckedIn, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresSignupRepository) Create(ctx context.Context, s *models.Signup) error {
	query := `
		INSERT INTO signups (name, contact, tournament_date, skill, checked_in)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, checked_in, created_at`

	err := r.db.QueryRowContext(ctx, query, s.Name, s.Contact, s.TournamentDate, s.Skill).
		Scan(&s.ID, &s.CheckedIn, &s.CreatedAt)
	if err != nil {
		return r.handleSignupError(err)
	}
	return nil
}

func (r *postgresSignupRepository) GetByID(ctx context.Context, id int) (*models.Signup, error) {
	query := `SELECT ` + signupColumns + ` FROM signups WHERE id = $1`

	s, err := scanSignup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSignupNotFound
		}
		return nil, fmt.Errorf("failed to scan signup by id %d: %w", id, err)
	}
	return s, nil
}

func (r *postgresSignupRepository) ListByDate(ctx context.Context, date string, checkedInOnly bool) ([]*models.Signup, error) {
	query := `SELECT ` + signupColumns + ` FROM signups WHERE tournament_date = $1`
	if checkedInOnly {
		query += ` AND checked_in`
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups for %s: %w", date, err)
	}
	defer rows.Close()

	signups := make([]*models.Signup, 0)
	for rows.Next() {
		s, scanErr := scanSignup(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan signup row: %w", scanErr)
		}
		signups = append(signups, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during signup rows iteration: %w", err)
	}
	return signups, nil
}

func (r *postgresSignupRepository) CountByDate(ctx context.Context, date string) (int, int, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE checked_in) FROM signups WHERE tournament_date = $1`

	var total, checkedIn int
	if err := r.db.QueryRowContext(ctx, query, date).Scan(&total, &checkedIn); err != nil {
		return 0, 0, fmt.Errorf("failed to count signups for %s: %w", date, err)
	}
	return total, checkedIn, nil
}

func (r *postgresSignupRepository) UpdateCheckIn(ctx context.Context, id int, checkedIn bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE signups SET checked_in = $1 WHERE id = $2`, checkedIn, id)
	if err != nil {
		return fmt.Errorf("UpdateCheckIn: failed to execute query for signup %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSignupNotFound)
}

func (r *postgresSignupRepository) UpdateSkill(ctx context.Context, id int, skill int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE signups SET skill = $1 WHERE id = $2`, skill, id)
	if err != nil {
		return r.handleSignupError(err)
	}
	return checkAffectedRows(result, ErrSignupNotFound)
}

// CopyToDate duplicates every signup of fromDate onto toDate, not checked in.
func (r *postgresSignupRepository) CopyToDate(ctx context.Context, exec SQLExecutor, fromDate, toDate string) (int, error) {
	query := `
		INSERT INTO signups (name, contact, tournament_date, skill, checked_in)
		SELECT name, contact, $2, skill, FALSE
		FROM signups
		WHERE tournament_date = $1
		ORDER BY name ASC, id ASC`

	result, err := executor(r.db, exec).ExecContext(ctx, query, fromDate, toDate)
	if err != nil {
		return 0, fmt.Errorf("failed to copy signups from %s to %s: %w", fromDate, toDate, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return int(n), nil
}

func (r *postgresSignupRepository) IsClosed(ctx context.Context, date string) (bool, error) {
	var closed bool
	err := r.db.QueryRowContext(ctx, `SELECT closed FROM signup_dates WHERE tournament_date = $1`, date).Scan(&closed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read signup state for %s: %w", date, err)
	}
	return closed, nil
}

func (r *postgresSignupRepository) SetClosed(ctx context.Context, date string, closed bool) error {
	query := `
		INSERT INTO signup_dates (tournament_date, closed)
		VALUES ($1, $2)
		ON CONFLICT (tournament_date) DO UPDATE SET closed = EXCLUDED.closed`

	if _, err := r.db.ExecContext(ctx, query, date, closed); err != nil {
		return fmt.Errorf("failed to set signup state for %s: %w", date, err)
	}
	return nil
}

func (r *postgresSignupRepository) handleSignupError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23514" { // check_violation
		return ErrSignupSkillInvalid
	}
	return err
}
