package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// logStatements is registered once, on the first Init.
var logStatements *prometheus.CounterVec //nolint:gochecknoglobals

// PrometheusHook counts log events per level.
type PrometheusHook struct {
	counter *prometheus.CounterVec
}

// Run implements zerolog.Hook.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	switch level {
	case zerolog.NoLevel, zerolog.Disabled:
		return
	default:
		h.counter.WithLabelValues(level.String()).Inc()
	}
}

// NewPrometheusHook returns the hook exporting botpanel_log_statements_total.
// The service label is fixed by the first call.
func NewPrometheusHook(service string) PrometheusHook {
	if logStatements == nil {
		logStatements = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "botpanel_log_statements_total",
				Help:        "Number of log statements, differentiated by log level.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"level"},
		)
	}

	return PrometheusHook{counter: logStatements}
}
