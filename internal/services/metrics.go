package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorderInterface abstracts the counters the services emit so tests
// can pass a no-op recorder.
type MetricsRecorderInterface interface {
	IncomeCreated()
	IncomeUpdated()
	IncomeDeleted()
	DistributionRepaired(bucketType string)
	CategoryFallback(reason string)
	AuthEvent(event string)
}

// MetricsRecorder registers and increments the Prometheus counters for the
// distribution pipeline.
type MetricsRecorder struct {
	incomesCreated        prometheus.Counter
	incomesUpdated        prometheus.Counter
	incomesDeleted        prometheus.Counter
	distributionsRepaired *prometheus.CounterVec
	categoryFallbacks     *prometheus.CounterVec
	authEvents            *prometheus.CounterVec
}

// NewMetricsRecorder registers the service counters on the default registry.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{
		incomesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetflow_incomes_created_total",
			Help: "Total number of income transactions created",
		}),
		incomesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetflow_incomes_updated_total",
			Help: "Total number of income transactions updated",
		}),
		incomesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "budgetflow_incomes_deleted_total",
			Help: "Total number of income transactions deleted",
		}),
		distributionsRepaired: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "budgetflow_distributions_repaired_total",
			Help: "Distribution children recreated after being found missing",
		}, []string{"bucket"}),
		categoryFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "budgetflow_category_fallbacks_total",
			Help: "Category resolutions that fell back to the default category",
		}, []string{"reason"}),
		authEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "budgetflow_auth_events_total",
			Help: "Authentication events by outcome",
		}, []string{"event"}),
	}
}

func (m *MetricsRecorder) IncomeCreated() { m.incomesCreated.Inc() }
func (m *MetricsRecorder) IncomeUpdated() { m.incomesUpdated.Inc() }
func (m *MetricsRecorder) IncomeDeleted() { m.incomesDeleted.Inc() }

func (m *MetricsRecorder) DistributionRepaired(bucketType string) {
	m.distributionsRepaired.WithLabelValues(bucketType).Inc()
}

func (m *MetricsRecorder) CategoryFallback(reason string) {
	m.categoryFallbacks.WithLabelValues(reason).Inc()
}

func (m *MetricsRecorder) AuthEvent(event string) {
	m.authEvents.WithLabelValues(event).Inc()
}

// NoopMetricsRecorder discards all metrics. Used in tests.
type NoopMetricsRecorder struct{}

func (NoopMetricsRecorder) IncomeCreated()              {}
func (NoopMetricsRecorder) IncomeUpdated()              {}
func (NoopMetricsRecorder) IncomeDeleted()              {}
func (NoopMetricsRecorder) DistributionRepaired(string) {}
func (NoopMetricsRecorder) CategoryFallback(string)     {}
func (NoopMetricsRecorder) AuthEvent(string)            {}
