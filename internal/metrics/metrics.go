// Package metrics defines the Prometheus instrumentation for MetalWatch.
// Counters are registered on the default registry via promauto; the serve
// command exposes them over HTTP with promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScrapeRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metalwatch_scrape_runs_total",
		Help: "Total number of per-source scrape attempts.",
	})

	ScrapeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metalwatch_scrape_failures_total",
		Help: "Total number of per-source scrape attempts that failed.",
	})

	RecordsScraped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metalwatch_records_scraped_total",
		Help: "Total number of valid concert records extracted.",
	})

	NewRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metalwatch_new_records_total",
		Help: "Total number of records not seen in any previous run.",
	})

	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metalwatch_notifications_sent_total",
		Help: "Total number of matched records forwarded to the notification channel.",
	})
)
