package brackets

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates one match per pair of entrants, in (i, j) order over
// the input, and cuts the list into rounds of ceil(n/2) matches.
// This caps the round size only: an entrant can appear twice in the same round.
// Empty labels are dropped before pairing.
func (g *RoundRobinGenerator) GenerateBracket(entrants []string) Bracket {
	teams := make([]string, 0, len(entrants))
	for _, e := range entrants {
		if e != "" {
			teams = append(teams, e)
		}
	}

	type pairing struct{ a, b string }
	pairings := make([]pairing, 0, len(teams)*(len(teams)-1)/2+1)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairings = append(pairings, pairing{teams[i], teams[j]})
		}
	}

	rounds := make([]Round, 0)
	if len(pairings) == 0 {
		return Bracket{Rounds: rounds}
	}

	perRound := (len(teams) + 1) / 2
	id := 1
	for start := 0; start < len(pairings); start += perRound {
		end := min(start+perRound, len(pairings))
		matches := make([]Match, 0, end-start)
		for _, p := range pairings[start:end] {
			matches = append(matches, Match{ID: id, Team1: p.a, Team2: p.b, State: Pending{}})
			id++
		}
		rounds = append(rounds, Round{Number: len(rounds) + 1, Matches: matches})
	}

	return Bracket{Rounds: rounds}
}
