package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ProviderFetchesTotal *prometheus.CounterVec

	RateLookupsTotal        prometheus.Counter
	ConversionRequestsTotal prometheus.Counter
}

// NewMetrics registers the collectors on reg. Pass
// prometheus.DefaultRegisterer in main; tests use a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ProviderFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_fetches_total",
				Help: "Total number of Banca d'Italia API fetches",
			},
			[]string{"endpoint", "outcome"},
		),

		RateLookupsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_lookups_total",
				Help: "Total number of exchange rate lookups",
			},
		),

		ConversionRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of currency conversion requests",
			},
		),
	}
}
