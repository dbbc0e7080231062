package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.TournamentCreated("single")
	m.TournamentCreated("single")
	m.TournamentCreated("round_robin")
	m.MatchAssigned()
	m.MatchFinished("single")
	m.TournamentCompleted()
	m.SummaryUploaded(nil)
	m.SummaryUploaded(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.tournamentsCreated.WithLabelValues("single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tournamentsCreated.WithLabelValues("round_robin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.matchesAssigned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.matchesFinished.WithLabelValues("single")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tournamentsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.summaryUploads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.summaryUploads.WithLabelValues("error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.TournamentCreated("single")
		m.TournamentCompleted()
		m.MatchAssigned()
		m.MatchFinished("single")
		m.SummaryUploaded(nil)
	})
}

func TestHandlerExposesLiveClients(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	RegisterLiveClients(reg, func() int { return 3 })

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "courtside_live_clients 3"), string(body))
}
