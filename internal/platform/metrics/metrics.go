package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Submissions        *prometheus.CounterVec
	PaymentInitiations *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
	RenderDuration     prometheus.Histogram
}

// Outcome labels shared by the counters above.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// New creates and registers all metrics on the given registerer. Tests pass
// a fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adhesion_submissions_total",
			Help: "Membership submissions processed, by outcome",
		}, []string{"outcome"}),
		PaymentInitiations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adhesion_payment_initiations_total",
			Help: "Payment gateway initiations attempted, by outcome",
		}, []string{"outcome"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adhesion_notifications_total",
			Help: "Operator email notifications, by outcome",
		}, []string{"outcome"}),
		RenderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "adhesion_render_duration_seconds",
			Help:    "Latency of PDF bulletin rendering",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}
