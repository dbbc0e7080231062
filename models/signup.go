package models

import "time"

const (
	SkillBeginner     = 1
	SkillCasual       = 2
	SkillIntermediate = 3
	SkillAdvanced     = 4

	DefaultSkill = SkillCasual
)

// Signup is a public registration for a tournament date.
type Signup struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Contact        *string   `json:"contact,omitempty" db:"contact"`
	TournamentDate string    `json:"tournament_date" db:"tournament_date"`
	Skill          int       `json:"skill" db:"skill"`
	CheckedIn      bool      `json:"checked_in" db:"checked_in"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// SignupDay describes the signup sheet for one date.
type SignupDay struct {
	Date      string   `json:"date"`
	Closed    bool     `json:"closed"`
	Signups   []Signup `json:"signups"`
	CheckedIn int      `json:"checked_in"`
}
