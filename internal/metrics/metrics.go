// Package metrics exposes Prometheus metrics for the staffing simulation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the service.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// SimulationsTotal counts scenario recomputations, labelled by whether the
// simulation stage was served from the memo.
var SimulationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffplan",
	Name:      "simulations_total",
	Help:      "Number of scenario recomputations",
}, []string{"cached"})

// LastTotalGap is the signed net headcount gap of the latest recomputation.
var LastTotalGap = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffplan",
	Name:      "last_total_gap",
	Help:      "Net recommended minus current headcount of the latest simulation",
})

// LastEstimatedMonthlyCost is the cost (or savings) figure of the latest recomputation.
var LastEstimatedMonthlyCost = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffplan",
	Name:      "last_estimated_monthly_cost",
	Help:      "Estimated monthly cost or savings of the latest simulation",
})

// DatasetLoadsTotal counts department dataset replacements.
var DatasetLoadsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "staffplan",
	Name:      "dataset_loads_total",
	Help:      "Number of department datasets loaded into the planner",
})

// UpstreamRequestsTotal counts calls to the data provider by endpoint and outcome.
var UpstreamRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffplan",
	Name:      "upstream_requests_total",
	Help:      "Requests issued to the KDS data provider",
}, []string{"endpoint", "outcome"})

// ObserveSimulation records one recomputation.
func ObserveSimulation(totalGap int, estimatedCost float64, cached bool) {
	label := "false"
	if cached {
		label = "true"
	}
	SimulationsTotal.WithLabelValues(label).Inc()
	LastTotalGap.Set(float64(totalGap))
	LastEstimatedMonthlyCost.Set(estimatedCost)
}

// ObserveUpstream records one provider request.
func ObserveUpstream(endpoint string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
