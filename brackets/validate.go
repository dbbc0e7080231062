package brackets

import (
	"fmt"
	"slices"
)

// ValidateAssignment checks what AssignToCourt does not: the match exists,
// is pending with both opponents known, and court is declared and free.
func ValidateAssignment(b Bracket, matchID int, court string, courts []string) error {
	m, ok := b.Find(matchID)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrMatchNotFound, matchID)
	}
	if !slices.Contains(courts, court) {
		return fmt.Errorf("%w: %q", ErrUnknownCourt, court)
	}
	if m.Status() != StatusPending {
		return fmt.Errorf("%w: match %d is %s", ErrInvalidTransition, matchID, m.Status())
	}
	if !m.HasOpponents() {
		return fmt.Errorf("%w: match %d is missing an opponent", ErrInvalidTransition, matchID)
	}
	if occupant, busy := Occupant(b, court); busy {
		return fmt.Errorf("%w: %q has match %d", ErrCourtOccupied, court, occupant.ID)
	}
	return nil
}

// ValidateCompletion checks that the match is in play and that winner is one of its entrants.
func ValidateCompletion(b Bracket, matchID int, winner string) error {
	m, ok := b.Find(matchID)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrMatchNotFound, matchID)
	}
	if m.Status() != StatusInPlay {
		return fmt.Errorf("%w: match %d is %s", ErrInvalidTransition, matchID, m.Status())
	}
	if !m.HasEntrant(winner) {
		return fmt.Errorf("%w: %q", ErrInvalidWinner, winner)
	}
	return nil
}
