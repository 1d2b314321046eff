package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricName string

const (
	MetricNameExecutedMessages MetricName = "executed_messages"
	MetricNameFailedMessages   MetricName = "failed_messages"
	MetricNameBlockHeight      MetricName = "block_height"
	MetricNameHTTPRequests     MetricName = "requests"
)

func (m MetricName) String() string {
	return string(m)
}

const (
	NamespaceBounty = "bounty"
	SubsystemLedger = "ledger"
	SubsystemHTTP   = "http"

	labelAction = "action"
	labelRoute  = "route"
	labelCode   = "code"
)

// Metrics holds the ledger counters on its own registry so several instances
// can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	executed *prometheus.CounterVec
	failed   *prometheus.CounterVec
	height   prometheus.Gauge
	requests *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		executed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NamespaceBounty,
			Subsystem: SubsystemLedger,
			Name:      MetricNameExecutedMessages.String(),
			Help:      "Number of committed ledger messages",
		}, []string{labelAction}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NamespaceBounty,
			Subsystem: SubsystemLedger,
			Name:      MetricNameFailedMessages.String(),
			Help:      "Number of rejected ledger messages",
		}, []string{labelAction}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: NamespaceBounty,
			Subsystem: SubsystemLedger,
			Name:      MetricNameBlockHeight.String(),
			Help:      "Height of the last committed block",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: NamespaceBounty,
			Subsystem: SubsystemHTTP,
			Name:      MetricNameHTTPRequests.String(),
			Help:      "Number of served HTTP requests",
		}, []string{labelRoute, labelCode}),
	}
	m.registry.MustRegister(m.executed, m.failed, m.height, m.requests)
	return m
}

// ObserveExecute counts a ledger message by action and outcome.
func (m *Metrics) ObserveExecute(action string, err error) {
	if err != nil {
		m.failed.WithLabelValues(action).Inc()
		return
	}
	m.executed.WithLabelValues(action).Inc()
}

func (m *Metrics) SetHeight(height int64) {
	m.height.Set(float64(height))
}

func (m *Metrics) IncrRequest(route string, code int) {
	m.requests.WithLabelValues(route, http.StatusText(code)).Inc()
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
