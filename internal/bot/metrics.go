package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeExecuted = "executed"
	outcomeUnknown  = "unknown"
	outcomeFailed   = "failed"

	// unknownCommand labels every lookup miss; typed names are user input.
	unknownCommand = "<unknown>"
)

var (
	dispatched = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "botpanel_commands_dispatched_total",
			Help: "Number of dispatched commands, differentiated by command and outcome.",
		},
		[]string{"command", "outcome"},
	)

	duration = promauto.NewHistogramVec( //nolint:gochecknoglobals
		prometheus.HistogramOpts{
			Name:    "botpanel_command_duration_seconds",
			Help:    "Handler execution time.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
)
