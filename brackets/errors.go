package brackets

import "errors"

var (
	ErrUnknownFormat     = errors.New("unknown bracket format")
	ErrMatchNotFound     = errors.New("match not found")
	ErrUnknownCourt      = errors.New("court is not declared for this tournament")
	ErrCourtOccupied     = errors.New("court is already occupied")
	ErrInvalidTransition = errors.New("invalid match state transition")
	ErrInvalidWinner     = errors.New("winner must be one of the match entrants")
)
