package observability

import (
	"time"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "animclone"

// Clone outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics records clone activity. It doubles as a ports.DiagnosticsSink counting warnings.
type Metrics struct {
	clones       *prometheus.CounterVec
	duration     prometheus.Histogram
	warnings     *prometheus.CounterVec
	nodes        *prometheus.CounterVec
	registration *prometheus.CounterVec
}

// NewMetrics creates and registers the clone metrics on registry.
// A nil registry means prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		clones: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "clones_total",
			Help:      "Clone operations by outcome",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "clone_duration_seconds",
			Help:      "Wall time of clone operations",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8), // 0.5ms to ~8s
		}),
		warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "warnings_total",
			Help:      "Degradations reported while cloning, by kind",
		}, []string{"kind"}),
		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "objects_cloned_total",
			Help:      "Objects created by successful clones, by kind",
		}, []string{"kind"}),
		registration: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "registrations_total",
			Help:      "Ownership registration attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ReportWarning counts a warning by kind.
func (m *Metrics) ReportWarning(w domain.Warning) {
	m.warnings.WithLabelValues(string(w.Kind)).Inc()
}

// ObserveClone records the outcome of one operation. sum is ignored when err is not nil.
func (m *Metrics) ObserveClone(elapsed time.Duration, sum domain.Summary, err error) {
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.clones.WithLabelValues(StatusError).Inc()
		return
	}
	m.clones.WithLabelValues(StatusSuccess).Inc()
	m.nodes.WithLabelValues(string(domain.KindStateMachine)).Add(float64(sum.Machines))
	m.nodes.WithLabelValues(string(domain.KindState)).Add(float64(sum.States))
	m.nodes.WithLabelValues(string(domain.KindTransition)).Add(float64(sum.Transitions + sum.AnyStateTransitions))
	m.nodes.WithLabelValues(string(domain.KindEntryTransition)).Add(float64(sum.EntryTransitions))
	m.nodes.WithLabelValues(string(domain.KindBehaviour)).Add(float64(sum.Behaviours))
}

// ObserveRegistration records the counters of one registration pass.
func (m *Metrics) ObserveRegistration(registered, conflicts, failures int) {
	m.registration.WithLabelValues("registered").Add(float64(registered))
	m.registration.WithLabelValues("conflict").Add(float64(conflicts))
	m.registration.WithLabelValues("failed").Add(float64(failures))
}
