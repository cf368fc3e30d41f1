package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "xbot"

// Fetch outcomes
const (
	OutcomeSuccess    = "success"
	OutcomeTransport  = "transport_error"
	OutcomeHTTPStatus = "http_status_error"
	OutcomeDecode     = "decode_error"
)

var (
	// TokenFetches counts broker token lookups by provider config key and outcome
	TokenFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "nango",
		Name:      "token_fetches_total",
		Help:      "Number of Nango connection token lookups.",
	}, []string{"provider_config_key", "outcome"})

	// TokenFetchDuration observes the broker round trip in seconds
	TokenFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "nango",
		Name:      "token_fetch_duration_seconds",
		Help:      "Latency of Nango connection token lookups.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider_config_key"})

	// MissingRequiredScopes is the number of default required scopes the last fetched token lacks
	MissingRequiredScopes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "nango",
		Name:      "missing_required_scopes",
		Help:      "Default required scopes absent from the last fetched token.",
	}, []string{"provider_config_key"})
)

// WriteTextfile dumps the default registry in the node_exporter textfile format
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
