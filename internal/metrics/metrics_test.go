package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSimulation(t *testing.T) {
	before := testutil.ToFloat64(SimulationsTotal.WithLabelValues("false"))

	ObserveSimulation(-3, 105000, false)

	if got := testutil.ToFloat64(SimulationsTotal.WithLabelValues("false")); got != before+1 {
		t.Errorf("expected counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(LastTotalGap); got != -3 {
		t.Errorf("expected gap -3, got %v", got)
	}
	if got := testutil.ToFloat64(LastEstimatedMonthlyCost); got != 105000 {
		t.Errorf("expected cost 105000, got %v", got)
	}
}

func TestObserveUpstream(t *testing.T) {
	ok := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("districts", "ok"))
	failed := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("districts", "error"))

	ObserveUpstream("districts", nil)
	ObserveUpstream("districts", errors.New("timeout"))

	if got := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("districts", "ok")); got != ok+1 {
		t.Errorf("expected ok counter %v, got %v", ok+1, got)
	}
	if got := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("districts", "error")); got != failed+1 {
		t.Errorf("expected error counter %v, got %v", failed+1, got)
	}
}
