package models

type DashboardStats struct {
	Date              string      `json:"date"`
	PlayersTotal      int         `json:"players_total"`
	SignupsTotal      int         `json:"signups_total"`
	CheckedInTotal    int         `json:"checked_in_total"`
	SignupClosed      bool        `json:"signup_closed"`
	TournamentsPlayed int         `json:"tournaments_played"`
	Current           *Tournament `json:"current,omitempty"`
}
