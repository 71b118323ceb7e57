package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SearchMetricsCollector tracks the behavior of the paged search pipeline.
type SearchMetricsCollector struct {
	Queries      prometheus.Counter
	PagesLoaded  prometheus.Counter
	StaleDropped prometheus.Counter
	Suggestions  prometheus.Counter
	Errors       prometheus.Counter
}

var searchCollector *SearchMetricsCollector

// GetSearchMetrics returns the process-wide search collector.
func GetSearchMetrics() *SearchMetricsCollector {
	if searchCollector == nil {
		searchCollector = &SearchMetricsCollector{
			Queries: promauto.NewCounter(prometheus.CounterOpts{
				Name: "cityweather_search_queries_total",
				Help: "The total number of query/sort resets issued",
			}),
			PagesLoaded: promauto.NewCounter(prometheus.CounterOpts{
				Name: "cityweather_search_pages_loaded_total",
				Help: "The total number of result pages applied",
			}),
			StaleDropped: promauto.NewCounter(prometheus.CounterOpts{
				Name: "cityweather_search_stale_results_dropped_total",
				Help: "The total number of completed fetches discarded because a newer query superseded them",
			}),
			Suggestions: promauto.NewCounter(prometheus.CounterOpts{
				Name: "cityweather_suggest_requests_total",
				Help: "The total number of suggestion fetches issued",
			}),
			Errors: promauto.NewCounter(prometheus.CounterOpts{
				Name: "cityweather_search_errors_total",
				Help: "The total number of failed search fetches",
			}),
		}
	}
	return searchCollector
}
