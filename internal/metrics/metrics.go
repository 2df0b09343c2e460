package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grants"

var (
	// HTTPRequests counts API requests by route template and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled.",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes API request latency by route template
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"method", "path"})

	// ContentFetches counts IPFS document retrievals by outcome
	ContentFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ipfs",
		Name:      "fetches_total",
		Help:      "IPFS document fetches by result.",
	}, []string{"result"})

	// ContractCalls counts read calls against the governance contracts
	ContractCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "calls_total",
		Help:      "Contract read calls by method and result.",
	}, []string{"method", "result"})

	// Proposals tracks the last observed proposal count per type and status
	Proposals = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "governance",
		Name:      "proposals",
		Help:      "Proposals by type and status at the last refresh.",
	}, []string{"type", "status"})

	// Beneficiaries tracks the registry size at the last refresh
	Beneficiaries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "governance",
		Name:      "beneficiaries",
		Help:      "Registered beneficiaries at the last refresh.",
	})
)

// Result maps an error to the "result" label value
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
