package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetricsCollector handles all request dispatch metrics
type DispatchMetricsCollector struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchesTotal  *prometheus.CounterVec
	inFlight         *prometheus.GaugeVec
}

// NewDispatchMetricsCollector creates a new dispatch metrics collector.
// An empty namespace uses DefaultNamespace.
func NewDispatchMetricsCollector(namespace string) *DispatchMetricsCollector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &DispatchMetricsCollector{
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Request handling duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"request", "status"},
		),

		dispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of requests handled by type and status",
			},
			[]string{"request", "status"},
		),

		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_in_flight",
				Help:      "Requests currently being handled by type",
			},
			[]string{"request"},
		),
	}
}

// Register registers all dispatch metrics with registerer.
// A nil registerer is a no-op (metrics not enabled).
func (c *DispatchMetricsCollector) Register(registerer prometheus.Registerer) error {
	if registerer == nil {
		return nil
	}

	metrics := []prometheus.Collector{
		c.dispatchDuration,
		c.dispatchesTotal,
		c.inFlight,
	}

	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordDispatch records the outcome of one handled request
func (c *DispatchMetricsCollector) RecordDispatch(
	requestName string,
	duration float64,
	success bool,
) {
	status := "success"
	if !success {
		status = "error"
	}

	c.dispatchDuration.WithLabelValues(requestName, status).Observe(duration)
	c.dispatchesTotal.WithLabelValues(requestName, status).Inc()
}

func (c *DispatchMetricsCollector) started(requestName string) {
	c.inFlight.WithLabelValues(requestName).Inc()
}

func (c *DispatchMetricsCollector) finished(requestName string) {
	c.inFlight.WithLabelValues(requestName).Dec()
}
