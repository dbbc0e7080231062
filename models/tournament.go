package models

import (
	"time"

	"github.com/Dosada05/courtside/brackets"
)

// TournamentStatus mirrors the status column of the tournaments table.
type TournamentStatus string

const (
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

// TargetType says how a game ends: first to a number of points, or after a number of minutes.
type TargetType string

const (
	TargetPoints TargetType = "points"
	TargetTime   TargetType = "time"
)

// MatchLogEntry records one finished match, newest first in Tournament.Log.
type MatchLogEntry struct {
	Timestamp time.Time `json:"ts"`
	MatchID   int       `json:"match_id"`
	Winner    string    `json:"winner"`
	Score     *string   `json:"score"`
}

// Tournament is one tournament day: its setup, the bracket and the log of results.
type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Date        string           `json:"date" db:"tournament_date"` // YYYY-MM-DD
	Format      brackets.Format  `json:"format" db:"format"`
	TargetType  TargetType       `json:"target_type" db:"target_type"`
	TargetValue int              `json:"target_value" db:"target_value"`
	Courts      []string         `json:"courts" db:"courts"`
	Bracket     brackets.Bracket `json:"bracket" db:"bracket"`
	Log         []MatchLogEntry  `json:"log" db:"log"`
	Status      TournamentStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	SummaryKey  *string          `json:"-" db:"summary_key"`
	SummaryURL  *string          `json:"summary_url,omitempty" db:"-"`
}

// TournamentSummary is what gets archived when a tournament is completed.
type TournamentSummary struct {
	TournamentID int              `json:"tournament_id"`
	Name         string           `json:"name"`
	Date         string           `json:"date"`
	Format       brackets.Format  `json:"format"`
	Courts       []string         `json:"courts"`
	Champion     *string          `json:"champion,omitempty"`
	Rounds       []brackets.Round `json:"rounds"`
	Log          []MatchLogEntry  `json:"log"`
	CompletedAt  time.Time        `json:"completed_at"`
}
