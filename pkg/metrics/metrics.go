package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_lookups_total",
			Help: "Property lookup invocations by outcome",
		},
		[]string{"outcome"},
	)
	AttomRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "attom_request_duration_seconds",
			Help:    "ATTOM API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	AddressSplitTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "address_split_total",
			Help: "Address splits by the rule that produced them",
		},
		[]string{"rule"},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(LookupsTotal)
		prometheus.MustRegister(AttomRequestDuration)
		prometheus.MustRegister(AddressSplitTotal)
	})
}
