package brackets

type Format string

const (
	FormatSingle     Format = "single"
	FormatDouble     Format = "double"
	FormatRoundRobin Format = "round_robin"
	FormatSeeding    Format = "seeding"
)

var formatLabels = map[Format]string{
	FormatSingle:     "Single Elimination",
	FormatDouble:     "Double Elimination (simplified)",
	FormatRoundRobin: "Round Robin",
	FormatSeeding:    "Seeding then Main",
}

func (f Format) Valid() bool {
	_, ok := formatLabels[f]
	return ok
}

// IsElimination reports whether winners move on to the next round.
// Double elimination and seeding are played as single elimination.
func (f Format) IsElimination() bool {
	switch f {
	case FormatSingle, FormatDouble, FormatSeeding:
		return true
	}
	return false
}

func (f Format) Label() string {
	if l, ok := formatLabels[f]; ok {
		return l
	}
	return string(f)
}
