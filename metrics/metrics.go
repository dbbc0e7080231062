package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "courtside"

// Metrics holds the counters of the tournament day. A nil *Metrics records nothing.
type Metrics struct {
	tournamentsCreated   *prometheus.CounterVec
	tournamentsCompleted prometheus.Counter
	matchesAssigned      prometheus.Counter
	matchesFinished      *prometheus.CounterVec
	summaryUploads       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tournamentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_created_total",
			Help:      "Tournaments created, by bracket format.",
		}, []string{"format"}),
		tournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_completed_total",
			Help:      "Tournaments marked completed.",
		}),
		matchesAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_assigned_total",
			Help:      "Matches sent to a court.",
		}),
		matchesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_finished_total",
			Help:      "Matches finished, by bracket format.",
		}, []string{"format"}),
		summaryUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_uploads_total",
			Help:      "Summary archive uploads, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.tournamentsCreated,
		m.tournamentsCompleted,
		m.matchesAssigned,
		m.matchesFinished,
		m.summaryUploads,
	)
	return m
}

// RegisterLiveClients exposes the number of connected websocket clients.
func RegisterLiveClients(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_clients",
		Help:      "Websocket clients currently watching a tournament.",
	}, func() float64 { return float64(count()) }))
}

// Handler serves the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (m *Metrics) TournamentCreated(format string) {
	if m == nil {
		return
	}
	m.tournamentsCreated.WithLabelValues(format).Inc()
}

func (m *Metrics) TournamentCompleted() {
	if m == nil {
		return
	}
	m.tournamentsCompleted.Inc()
}

func (m *Metrics) MatchAssigned() {
	if m == nil {
		return
	}
	m.matchesAssigned.Inc()
}

func (m *Metrics) MatchFinished(format string) {
	if m == nil {
		return
	}
	m.matchesFinished.WithLabelValues(format).Inc()
}

// SummaryUploaded counts an archive upload attempt.
func (m *Metrics) SummaryUploaded(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.summaryUploads.WithLabelValues(result).Inc()
}
