package preview

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render outcomes used as the status label.
const (
	statusOK       = "ok"
	statusNotFound = "not_found"
	statusInvalid  = "invalid"
)

// metrics holds the Prometheus metrics for document renders.
type metrics struct {
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	reloads        prometheus.Counter
}

// newMetrics registers the render metrics. clients reports the number of
// connected live reload browsers.
func newMetrics(reg prometheus.Registerer, namespace string, clients func() int) *metrics {
	factory := promauto.With(reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reload_clients",
		Help:      "Number of browsers connected for live reload",
	}, func() float64 {
		return float64(clients())
	})

	return &metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of document renders by outcome",
		}, []string{"status"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent decoding and rendering a document",
			Buckets:   prometheus.DefBuckets,
		}),

		reloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of reload notifications sent to browsers",
		}),
	}
}

func (m *metrics) observeRender(status string, d time.Duration) {
	m.renders.WithLabelValues(status).Inc()
	m.renderDuration.Observe(d.Seconds())
}
