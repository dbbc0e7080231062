package brackets

import "fmt"

type BracketGenerator interface {
	GenerateBracket(entrants []string) Bracket

	GetName() string
}

// GeneratorFor returns the generator behind a format.
func GeneratorFor(format Format) (BracketGenerator, error) {
	switch format {
	case FormatSingle:
		return NewSingleEliminationGenerator(), nil
	case FormatDouble:
		return NewDoubleEliminationGenerator(), nil
	case FormatSeeding:
		return NewSeedingGenerator(), nil
	case FormatRoundRobin:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Generate builds the initial bracket for entrants, in the order given.
// An unknown format yields an empty bracket rather than an error; callers
// that need to tell the difference should use GeneratorFor.
func Generate(format Format, entrants []string) Bracket {
	g, err := GeneratorFor(format)
	if err != nil {
		return Bracket{Rounds: []Round{}}
	}
	return g.GenerateBracket(entrants)
}
