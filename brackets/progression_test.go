package brackets

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFind(t *testing.T, b Bracket, id int) Match {
	t.Helper()
	m, ok := b.Find(id)
	require.True(t, ok, "match %d not found", id)
	return m
}

func TestAssignThenEnd(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B", "C", "D"})

	b = AssignToCourt(b, 1, "Front Left")
	m := mustFind(t, b, 1)
	assert.Equal(t, StatusInPlay, m.Status())
	court, ok := m.Court()
	assert.True(t, ok)
	assert.Equal(t, "Front Left", court)
	_, hasWinner := m.Winner()
	assert.False(t, hasWinner)

	b = EndMatch(b, 1, "11-7", "A")
	m = mustFind(t, b, 1)
	assert.Equal(t, StatusDone, m.Status())
	_, hasCourt := m.Court()
	assert.False(t, hasCourt)
	winner, _ := m.Winner()
	assert.Equal(t, "A", winner)
	score, ok := m.Score()
	assert.True(t, ok)
	assert.Equal(t, "11-7", score)
}

func TestEndMatch_EmptyScore(t *testing.T) {
	b := EndMatch(Generate(FormatSingle, []string{"A", "B"}), 1, "", "B")

	m := mustFind(t, b, 1)
	_, ok := m.Score()
	assert.False(t, ok)
	winner, ok := m.Winner()
	assert.True(t, ok)
	assert.Equal(t, "B", winner)
}

func TestAdvanceWinner_FourEntrants(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B", "C", "D"})

	b = EndMatch(b, 1, "11-3", "A")
	b = AdvanceWinner(b, 1, "A")
	assert.Equal(t, "A", b.Rounds[1].Matches[0].Team1)
	assert.Empty(t, b.Rounds[1].Matches[0].Team2)

	b = EndMatch(b, 2, "11-9", "B")
	b = AdvanceWinner(b, 2, "B")
	assert.Equal(t, "A", b.Rounds[1].Matches[0].Team1)
	assert.Equal(t, "B", b.Rounds[1].Matches[0].Team2)
	assert.True(t, b.Rounds[1].Matches[0].HasOpponents())
}

func TestAdvanceWinner_LeavesSourceUntouched(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B", "C", "D"})

	got := AdvanceWinner(b, 2, "D")

	assert.Equal(t, StatusPending, mustFind(t, got, 2).Status())
	assert.Equal(t, "D", got.Rounds[1].Matches[0].Team2)
}

func TestAdvanceWinner_Identity(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B", "C", "D"})

	tests := []struct {
		name    string
		matchID int
	}{
		{name: "unknown id", matchID: 99},
		{name: "final match", matchID: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdvanceWinner(b, tt.matchID, "A")
			if diff := cmp.Diff(b, got); diff != "" {
				t.Errorf("AdvanceWinner() changed bracket (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdvanceWinner_ShortNextRound(t *testing.T) {
	// Round robin rounds do not halve; the last round here has a single match.
	b := Generate(FormatRoundRobin, []string{"A", "B", "C", "D", "E"})

	got := AdvanceWinner(b, 9, "C")

	if diff := cmp.Diff(b, got); diff != "" {
		t.Errorf("AdvanceWinner() wrote past the next round (-want +got):\n%s", diff)
	}
}

func TestProgression_DoesNotMutateInput(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B", "C", "D"})
	before := b.Clone()

	_ = AssignToCourt(b, 1, "Back")
	_ = EndMatch(b, 1, "11-0", "A")
	_ = AdvanceWinner(b, 1, "A")

	if diff := cmp.Diff(before, b); diff != "" {
		t.Errorf("input bracket was mutated (-before +after):\n%s", diff)
	}
}

func TestProgression_UnknownIDIsIdentity(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B"})

	assert.Empty(t, cmp.Diff(b, AssignToCourt(b, 42, "Back")))
	assert.Empty(t, cmp.Diff(b, EndMatch(b, 42, "1-0", "A")))
}

// The engine has no terminal lock. These document the current behaviour.
func TestProgression_NoTerminalLock(t *testing.T) {
	t.Run("reassigning an in-play match moves it", func(t *testing.T) {
		b := AssignToCourt(Generate(FormatSingle, []string{"A", "B"}), 1, "Front Left")
		b = AssignToCourt(b, 1, "Back")

		court, _ := mustFind(t, b, 1).Court()
		assert.Equal(t, "Back", court)
	})

	t.Run("assigning a finished match reopens it", func(t *testing.T) {
		b := EndMatch(Generate(FormatSingle, []string{"A", "B"}), 1, "11-2", "A")
		b = AssignToCourt(b, 1, "Back")

		m := mustFind(t, b, 1)
		assert.Equal(t, StatusInPlay, m.Status())
		_, hasWinner := m.Winner()
		assert.False(t, hasWinner)
	})

	t.Run("second EndMatch overwrites the result", func(t *testing.T) {
		b := EndMatch(Generate(FormatSingle, []string{"A", "B"}), 1, "11-2", "A")
		b = EndMatch(b, 1, "2-11", "B")

		winner, _ := mustFind(t, b, 1).Winner()
		score, _ := mustFind(t, b, 1).Score()
		assert.Equal(t, "B", winner)
		assert.Equal(t, "2-11", score)
	})

	t.Run("match with a bye can be put in play", func(t *testing.T) {
		b := AssignToCourt(Generate(FormatSingle, []string{"A", "B", "C"}), 2, "Back")

		assert.Equal(t, StatusInPlay, mustFind(t, b, 2).Status())
		assert.Error(t, ValidateAssignment(Generate(FormatSingle, []string{"A", "B", "C"}), 2, "Back", []string{"Back"}))
	})

	t.Run("empty winner is accepted", func(t *testing.T) {
		start := AssignToCourt(Generate(FormatSingle, []string{"A", "B"}), 1, "Back")
		b := EndMatch(start, 1, "", "")

		m := mustFind(t, b, 1)
		assert.Equal(t, StatusDone, m.Status())
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"team1":"A","team2":"B","court":null,"winner":null,"score":null,"status":"done"}`, string(data))

		assert.ErrorIs(t, ValidateCompletion(start, 1, ""), ErrInvalidWinner)
	})

	t.Run("two matches on one court", func(t *testing.T) {
		b := Generate(FormatSingle, []string{"A", "B", "C", "D"})
		b = AssignToCourt(b, 1, "Back")
		b = AssignToCourt(b, 2, "Back")

		assert.Len(t, b.ActiveMatches(), 2)
		slots := CourtAllocation(b, []string{"Back"})
		require.NotNil(t, slots[0].Match)
		assert.Equal(t, 2, slots[0].Match.ID)
	})
}

func TestValidateAssignment(t *testing.T) {
	courts := []string{"Front Left", "Back"}
	base := Generate(FormatSingle, []string{"A", "B", "C", "D", "E"})

	tests := []struct {
		name    string
		bracket Bracket
		matchID int
		court   string
		wantErr error
	}{
		{name: "ok", bracket: base, matchID: 1, court: "Back"},
		{name: "unknown match", bracket: base, matchID: 77, court: "Back", wantErr: ErrMatchNotFound},
		{name: "undeclared court", bracket: base, matchID: 1, court: "Side", wantErr: ErrUnknownCourt},
		{name: "bye", bracket: base, matchID: 3, court: "Back", wantErr: ErrInvalidTransition},
		{name: "undecided", bracket: base, matchID: 5, court: "Back", wantErr: ErrInvalidTransition},
		{name: "already in play", bracket: AssignToCourt(base, 1, "Back"), matchID: 1, court: "Front Left", wantErr: ErrInvalidTransition},
		{name: "already done", bracket: EndMatch(base, 1, "", "A"), matchID: 1, court: "Back", wantErr: ErrInvalidTransition},
		{name: "court occupied", bracket: AssignToCourt(base, 1, "Back"), matchID: 2, court: "Back", wantErr: ErrCourtOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignment(tt.bracket, tt.matchID, tt.court, courts)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateCompletion(t *testing.T) {
	base := Generate(FormatSingle, []string{"A", "B", "C", "D"})
	playing := AssignToCourt(base, 1, "Back")

	tests := []struct {
		name    string
		bracket Bracket
		matchID int
		winner  string
		wantErr error
	}{
		{name: "ok", bracket: playing, matchID: 1, winner: "B"},
		{name: "unknown match", bracket: playing, matchID: 9, winner: "A", wantErr: ErrMatchNotFound},
		{name: "not started", bracket: base, matchID: 1, winner: "A", wantErr: ErrInvalidTransition},
		{name: "already done", bracket: EndMatch(playing, 1, "", "A"), matchID: 1, winner: "A", wantErr: ErrInvalidTransition},
		{name: "outsider", bracket: playing, matchID: 1, winner: "C", wantErr: ErrInvalidWinner},
		{name: "empty winner", bracket: playing, matchID: 1, winner: "", wantErr: ErrInvalidWinner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompletion(tt.bracket, tt.matchID, tt.winner)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFullSingleEliminationRun(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B", "C", "D", "E", "F", "G", "H"})
	courts := []string{"One", "Two"}

	finish := func(id int, winner string) {
		m := mustFind(t, b, id)
		court := courts[id%2]
		require.NoError(t, ValidateAssignment(b, id, court, courts))
		b = AssignToCourt(b, id, court)
		require.NoError(t, ValidateCompletion(b, id, winner))
		b = EndMatch(b, id, "11-5", winner)
		b = AdvanceWinner(b, id, winner)
		require.True(t, m.HasEntrant(winner))
	}

	finish(1, "A")
	finish(2, "D")
	finish(3, "E")
	finish(4, "H")
	finish(5, "A")
	finish(6, "H")

	_, done := b.Champion()
	assert.False(t, done)

	finish(7, "H")
	champ, ok := b.Champion()
	require.True(t, ok)
	assert.Equal(t, "H", champ)
	assert.Empty(t, b.ActiveMatches())
	assert.Empty(t, b.PendingMatches())
}
