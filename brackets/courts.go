package brackets

type CourtStatus string

const (
	CourtAvailable CourtStatus = "available"
	CourtInPlay    CourtStatus = "in_play"
)

// CourtSlot is one declared court and the match on it, if any.
type CourtSlot struct {
	Court  string      `json:"court"`
	Status CourtStatus `json:"status"`
	Match  *Match      `json:"match"`
}

// CourtAllocation maps every declared court, in declaration order, to the
// match currently holding it. It is computed from the bracket on each call.
// If two matches claim the same court the later one in the bracket wins;
// courts that are not declared are ignored.
func CourtAllocation(b Bracket, courts []string) []CourtSlot {
	index := make(map[string]int, len(courts))
	slots := make([]CourtSlot, 0, len(courts))
	for _, c := range courts {
		if _, dup := index[c]; dup {
			continue
		}
		index[c] = len(slots)
		slots = append(slots, CourtSlot{Court: c, Status: CourtAvailable})
	}

	for _, r := range b.Rounds {
		for _, m := range r.Matches {
			court, ok := m.Court()
			if !ok {
				continue
			}
			i, declared := index[court]
			if !declared {
				continue
			}
			occupant := m
			slots[i].Match = &occupant
			slots[i].Status = CourtInPlay
		}
	}
	return slots
}

// Occupant returns the match holding court, with the same last-writer rule as CourtAllocation.
func Occupant(b Bracket, court string) (Match, bool) {
	var found Match
	ok := false
	for _, r := range b.Rounds {
		for _, m := range r.Matches {
			if c, inPlay := m.Court(); inPlay && c == court {
				found, ok = m, true
			}
		}
	}
	return found, ok
}
