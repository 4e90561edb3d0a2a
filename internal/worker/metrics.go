package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricListingsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tooldeals_listings_ingested_total",
		Help: "Listings accepted into a reconcile pass, by source.",
	}, []string{"source"})

	metricListingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tooldeals_listings_rejected_total",
		Help: "Listings dropped before reconciliation, by source and reason.",
	}, []string{"source", "reason"})

	metricGlitchAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tooldeals_glitch_alerts_total",
		Help: "Urgent-deal notifications emitted by the engine.",
	})

	metricSourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tooldeals_source_failures_total",
		Help: "Failed source searches, by source.",
	}, []string{"source"})

	metricDealsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tooldeals_deals_expired_total",
		Help: "Deals expired by the liveness sweep.",
	})
)
