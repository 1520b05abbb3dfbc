package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the directory.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Actions          *prometheus.CounterVec
	RemoteFailures   *prometheus.CounterVec
	SearchRequests   *prometheus.CounterVec
	CheckoutsStarted *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carelink_actions_total",
			Help: "Actions dispatched to the store, by action type",
		}, []string{"action"}),
		RemoteFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carelink_remote_failures_total",
			Help: "Remote persistence writes that failed, by operation",
		}, []string{"operation"}),
		SearchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carelink_search_requests_total",
			Help: "Search requests, by cache outcome (hit, miss, bypass)",
		}, []string{"cache"}),
		CheckoutsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carelink_checkouts_started_total",
			Help: "Hosted checkout sessions created, by plan",
		}, []string{"plan"}),
	}
}

// IncrementAction counts one dispatched action.
func (m *Metrics) IncrementAction(action string) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(action).Inc()
}

// IncrementRemoteFailure counts one failed remote write.
func (m *Metrics) IncrementRemoteFailure(operation string) {
	if m == nil {
		return
	}
	m.RemoteFailures.WithLabelValues(operation).Inc()
}

// IncrementSearch counts one search request.
func (m *Metrics) IncrementSearch(cache string) {
	if m == nil {
		return
	}
	m.SearchRequests.WithLabelValues(cache).Inc()
}

// IncrementCheckout counts one created checkout session.
func (m *Metrics) IncrementCheckout(plan string) {
	if m == nil {
		return
	}
	m.CheckoutsStarted.WithLabelValues(plan).Inc()
}
