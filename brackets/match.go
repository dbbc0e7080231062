package brackets

import (
	"encoding/json"
	"fmt"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusInPlay  Status = "in_play"
	StatusDone    Status = "done"
)

// State is the closed set of states a match can be in: Pending, InPlay or Done.
// The court only exists while a match is in play and the winner only once it is done.
type State interface {
	Status() Status
	isState()
}

type Pending struct{}

type InPlay struct {
	Court string
}

type Done struct {
	Winner string
	Score  string // free-form, e.g. "11-7"; empty when not reported
}

func (Pending) Status() Status { return StatusPending }
func (InPlay) Status() Status  { return StatusInPlay }
func (Done) Status() Status    { return StatusDone }

func (Pending) isState() {}
func (InPlay) isState()  {}
func (Done) isState()    {}

// Match is a single contest between up to two entrants.
// An empty Team1/Team2 means a bye or a slot not yet decided.
type Match struct {
	ID    int
	Team1 string
	Team2 string
	State State
}

type Round struct {
	Number  int     `json:"round"`
	Matches []Match `json:"matches"`
}

type Bracket struct {
	Rounds []Round `json:"rounds"`
}

func (m Match) Status() Status {
	if m.State == nil {
		return StatusPending
	}
	return m.State.Status()
}

func (m Match) Court() (string, bool) {
	if s, ok := m.State.(InPlay); ok {
		return s.Court, true
	}
	return "", false
}

func (m Match) Winner() (string, bool) {
	if s, ok := m.State.(Done); ok {
		return s.Winner, true
	}
	return "", false
}

func (m Match) Score() (string, bool) {
	if s, ok := m.State.(Done); ok && s.Score != "" {
		return s.Score, true
	}
	return "", false
}

// HasOpponents reports whether both slots are filled, i.e. the match can be played.
func (m Match) HasOpponents() bool {
	return m.Team1 != "" && m.Team2 != ""
}

// HasEntrant reports whether label plays in this match.
func (m Match) HasEntrant(label string) bool {
	return label != "" && (m.Team1 == label || m.Team2 == label)
}

type wireMatch struct {
	ID     int     `json:"id"`
	Team1  *string `json:"team1"`
	Team2  *string `json:"team2"`
	Court  *string `json:"court"`
	Winner *string `json:"winner"`
	Score  *string `json:"score"`
	Status Status  `json:"status"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (m Match) MarshalJSON() ([]byte, error) {
	w := wireMatch{
		ID:     m.ID,
		Team1:  optional(m.Team1),
		Team2:  optional(m.Team2),
		Status: m.Status(),
	}
	switch s := m.State.(type) {
	case InPlay:
		w.Court = optional(s.Court)
	case Done:
		w.Winner = optional(s.Winner)
		w.Score = optional(s.Score)
	}
	return json.Marshal(w)
}

func (m *Match) UnmarshalJSON(data []byte) error {
	var w wireMatch
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	m.ID = w.ID
	m.Team1 = deref(w.Team1)
	m.Team2 = deref(w.Team2)

	switch w.Status {
	case StatusPending, "":
		m.State = Pending{}
	case StatusInPlay:
		m.State = InPlay{Court: deref(w.Court)}
	case StatusDone:
		m.State = Done{Winner: deref(w.Winner), Score: deref(w.Score)}
	default:
		return fmt.Errorf("match %d: unknown status %q", w.ID, w.Status)
	}
	return nil
}

func (b Bracket) MarshalJSON() ([]byte, error) {
	type plain Bracket
	if b.Rounds == nil {
		b.Rounds = []Round{}
	}
	return json.Marshal(plain(b))
}

// Clone returns a copy that shares no slices with b.
// Match states are plain values, so copying the matches is enough.
func (b Bracket) Clone() Bracket {
	rounds := make([]Round, len(b.Rounds))
	for i, r := range b.Rounds {
		matches := make([]Match, len(r.Matches))
		copy(matches, r.Matches)
		rounds[i] = Round{Number: r.Number, Matches: matches}
	}
	return Bracket{Rounds: rounds}
}

// IsEmpty reports whether no bracket was produced (unknown format).
func (b Bracket) IsEmpty() bool {
	return len(b.Rounds) == 0
}

func (b Bracket) MatchCount() int {
	n := 0
	for _, r := range b.Rounds {
		n += len(r.Matches)
	}
	return n
}

// Find looks a match up by id.
func (b Bracket) Find(matchID int) (Match, bool) {
	r, i, ok := b.locate(matchID)
	if !ok {
		return Match{}, false
	}
	return b.Rounds[r].Matches[i], true
}

func (b Bracket) locate(matchID int) (round, index int, ok bool) {
	for r, rd := range b.Rounds {
		for i, m := range rd.Matches {
			if m.ID == matchID {
				return r, i, true
			}
		}
	}
	return -1, -1, false
}

// PendingMatches lists matches that are ready to be sent to a court:
// still pending and with both opponents known.
func (b Bracket) PendingMatches() []Match {
	list := make([]Match, 0)
	for _, r := range b.Rounds {
		for _, m := range r.Matches {
			if m.Status() == StatusPending && m.HasOpponents() {
				list = append(list, m)
			}
		}
	}
	return list
}

func (b Bracket) ActiveMatches() []Match {
	list := make([]Match, 0)
	for _, r := range b.Rounds {
		for _, m := range r.Matches {
			if m.Status() == StatusInPlay {
				list = append(list, m)
			}
		}
	}
	return list
}

// Champion returns the winner of the final round when it consists of a single finished match.
func (b Bracket) Champion() (string, bool) {
	if len(b.Rounds) == 0 {
		return "", false
	}
	final := b.Rounds[len(b.Rounds)-1].Matches
	if len(final) != 1 {
		return "", false
	}
	return final[0].Winner()
}
