package brackets

// The progression functions never modify their input: each one works on a
// clone and returns it. An unknown match id yields an unchanged copy.

// AssignToCourt puts a match in play on court, whatever its previous state.
// Opponents and court occupancy are not checked here; see ValidateAssignment.
func AssignToCourt(b Bracket, matchID int, court string) Bracket {
	return b.update(matchID, func(m *Match) {
		m.State = InPlay{Court: court}
	})
}

// EndMatch marks a match done with its score and winner and frees its court.
// The winner is not moved forward; call AdvanceWinner for that.
// An empty winner is accepted and leaves a done match without a winner;
// callers check the winner with ValidateCompletion first.
func EndMatch(b Bracket, matchID int, score, winner string) Bracket {
	return b.update(matchID, func(m *Match) {
		m.State = Done{Winner: winner, Score: score}
	})
}

// AdvanceWinner writes winner into the next round's match at index/2:
// the first slot for an even index, the second for an odd one.
// Matches in the final round have nowhere to go. The source match is left as is.
func AdvanceWinner(b Bracket, matchID int, winner string) Bracket {
	out := b.Clone()
	r, i, ok := out.locate(matchID)
	if !ok || r+1 >= len(out.Rounds) {
		return out
	}

	next := out.Rounds[r+1].Matches
	slot := i / 2
	if slot >= len(next) {
		return out
	}
	if i%2 == 0 {
		next[slot].Team1 = winner
	} else {
		next[slot].Team2 = winner
	}
	return out
}

func (b Bracket) update(matchID int, fn func(m *Match)) Bracket {
	out := b.Clone()
	for r := range out.Rounds {
		for i := range out.Rounds[r].Matches {
			if out.Rounds[r].Matches[i].ID == matchID {
				fn(&out.Rounds[r].Matches[i])
			}
		}
	}
	return out
}
