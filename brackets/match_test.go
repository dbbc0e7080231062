package brackets

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchJSON_WireShape(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  string
	}{
		{
			name:  "pending with a bye",
			match: Match{ID: 2, Team1: "C", State: Pending{}},
			want:  `{"id":2,"team1":"C","team2":null,"court":null,"winner":null,"score":null,"status":"pending"}`,
		},
		{
			name:  "in play",
			match: Match{ID: 1, Team1: "A", Team2: "B", State: InPlay{Court: "Back"}},
			want:  `{"id":1,"team1":"A","team2":"B","court":"Back","winner":null,"score":null,"status":"in_play"}`,
		},
		{
			name:  "done",
			match: Match{ID: 1, Team1: "A", Team2: "B", State: Done{Winner: "A", Score: "11-7"}},
			want:  `{"id":1,"team1":"A","team2":"B","court":null,"winner":"A","score":"11-7","status":"done"}`,
		},
		{
			name:  "nil state reads as pending",
			match: Match{ID: 4},
			want:  `{"id":4,"team1":null,"team2":null,"court":null,"winner":null,"score":null,"status":"pending"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.match)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestBracketJSON_EmptyRounds(t *testing.T) {
	got, err := json.Marshal(Bracket{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rounds":[]}`, string(got))
}

func TestBracketJSON_Decode(t *testing.T) {
	b := Generate(FormatSingle, []string{"A", "B", "C", "D"})
	b = AssignToCourt(b, 2, "Back")
	b = EndMatch(b, 1, "11-8", "B")
	b = AdvanceWinner(b, 1, "B")

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded Bracket
	require.NoError(t, json.Unmarshal(raw, &decoded))
	if diff := cmp.Diff(b, decoded); diff != "" {
		t.Errorf("decoded bracket mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchJSON_UnknownStatus(t *testing.T) {
	var m Match
	err := json.Unmarshal([]byte(`{"id":1,"status":"cancelled"}`), &m)
	assert.Error(t, err)
}
