package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of one widget fetch cycle (tracking excluded).
	WidgetFetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "widget_fetch_latency_seconds",
		Help:    "Latency of decision-service widget fetches",
		Buckets: prometheus.DefBuckets,
	})

	// Directives served to pages, by page and shape.
	WidgetDirectivesServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_directives_served_total",
			Help: "Count of widget directives published to pages",
		},
		[]string{"page", "shape"},
	)

	// Fetch cycles that degraded to no directive, by failure reason.
	WidgetFetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_fetch_failures_total",
			Help: "Widget fetches degraded to no directive",
		},
		[]string{"page", "reason"},
	)

	// Responses dropped because a later mount superseded the fetch.
	WidgetStaleDrops = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "widget_stale_responses_dropped_total",
		Help: "Widget responses discarded by the supersede check",
	})

	// Action token dispatches, by page and whether a handler matched.
	WidgetActionDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_action_dispatches_total",
			Help: "Directive action dispatches",
		},
		[]string{"page", "handled"},
	)

	// Seat assignment attempts, by outcome.
	SeatAssignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_assignment_attempts_total",
			Help: "Seat assignment attempts by result",
		},
		[]string{"result"},
	)
)

func Init() {
	prometheus.MustRegister(
		WidgetFetchLatency,
		WidgetDirectivesServed,
		WidgetFetchFailures,
		WidgetStaleDrops,
		WidgetActionDispatches,
		SeatAssignments,
	)
}
