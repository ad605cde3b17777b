package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/brazier-go/internal/infrastructure/config"
	"github.com/andrescamacho/brazier-go/pkg/behaviors"
	"github.com/andrescamacho/brazier-go/pkg/mediator"
	"github.com/andrescamacho/brazier-go/pkg/metrics"
)

// BuildMediator creates a mediator with the pipeline described by cfg.
// Order, outermost first: tracing, correlation, logging, metrics, rate limit,
// validation. A nil tracer falls back to the global tracer provider.
// Dispatch metrics are registered on registerer, which is required when
// metrics are enabled.
func BuildMediator(cfg *config.Config, logger *zap.Logger, tracer trace.Tracer, registerer prometheus.Registerer) (*mediator.Mediator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []mediator.Option{mediator.WithLogger(logger)}
	if cfg.Dispatch.Concurrent {
		opts = append(opts, mediator.WithConcurrentDispatch())
	}

	m := mediator.New(opts...)
	if cfg.Tracing.Enabled {
		m.Use(behaviors.Tracing(tracer))
	}
	m.Use(behaviors.Correlation(), behaviors.Logging(logger))

	if cfg.Metrics.Enabled {
		if registerer == nil {
			return nil, fmt.Errorf("metrics enabled but no registry given")
		}
		collector := metrics.NewDispatchMetricsCollector(cfg.Metrics.Namespace)
		if err := collector.Register(registerer); err != nil {
			return nil, fmt.Errorf("failed to register dispatch metrics: %w", err)
		}
		m.Use(metrics.PrometheusMiddleware(collector))
	}

	if cfg.Dispatch.RateLimit.Enabled() {
		limiter := rate.NewLimiter(rate.Limit(cfg.Dispatch.RateLimit.Requests), cfg.Dispatch.RateLimit.Burst)
		m.Use(behaviors.RateLimit(limiter))
	}

	m.Use(behaviors.Validation(nil))

	return m, nil
}

// writeMetrics prints the counters gathered so far, one sample per line.
// A nil gatherer prints nothing.
func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	if gatherer == nil {
		return nil
	}

	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g",
				family.GetName(), strings.Join(labels, ","), metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
