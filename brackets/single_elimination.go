package brackets

// SingleEliminationGenerator pairs entrants in input order, padding the field
// with byes up to the next power of two, and pre-allocates every later round
// with empty matches that AdvanceWinner fills in.
type SingleEliminationGenerator struct {
	name string
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{name: "SingleElimination"}
}

// NewDoubleEliminationGenerator is single elimination under another name:
// there is no losers bracket.
func NewDoubleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{name: "DoubleEliminationSimplified"}
}

// NewSeedingGenerator treats the input order as the seeding and plays single elimination.
func NewSeedingGenerator() BracketGenerator {
	return &SingleEliminationGenerator{name: "SeedingThenMain"}
}

func (g *SingleEliminationGenerator) GetName() string {
	return g.name
}

func (g *SingleEliminationGenerator) GenerateBracket(entrants []string) Bracket {
	slots := nextPowerOfTwo(len(entrants))
	labels := make([]string, slots)
	copy(labels, entrants)

	nextID := 1
	first := make([]Match, 0, (slots+1)/2)
	for i := 0; i < slots; i += 2 {
		m := Match{ID: nextID, Team1: labels[i], State: Pending{}}
		if i+1 < slots {
			m.Team2 = labels[i+1]
		}
		first = append(first, m)
		nextID++
	}

	rounds := []Round{{Number: 1, Matches: first}}
	for prev := len(first); prev > 1; {
		count := (prev + 1) / 2
		matches := make([]Match, count)
		for i := range matches {
			matches[i] = Match{ID: nextID, State: Pending{}}
			nextID++
		}
		rounds = append(rounds, Round{Number: len(rounds) + 1, Matches: matches})
		prev = count
	}

	return Bracket{Rounds: rounds}
}

// nextPowerOfTwo never returns less than 1, so an empty field still gets one slot.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
