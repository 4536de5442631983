package workforce

import "fmt"

// Simulate computes the scenario-adjusted headcount for every department.
//
// recommended = ceil(baseline * (1 + occ/100) / (prod/100)), evaluated in integer
// arithmetic as ceil(baseline*(100+occ) / prod) so exact results are never bumped.
// Parameters are trusted to be in range; only the division precondition is asserted.
func Simulate(departments []Department, params ScenarioParameters) ([]SimulatedDepartment, error) {
	if params.ProductivityTargetPercent <= 0 {
		return nil, fmt.Errorf("%w: productivity target must be positive, got %d", ErrInvalidScenario, params.ProductivityTargetPercent)
	}
	if params.OccupancyDeltaPercent < -100 {
		return nil, fmt.Errorf("%w: occupancy delta below -100%%, got %d", ErrInvalidScenario, params.OccupancyDeltaPercent)
	}

	occFactor := 100 + params.OccupancyDeltaPercent
	result := make([]SimulatedDepartment, len(departments))
	for i, dept := range departments {
		recommended := ceilDiv(dept.BaselineRecommendation*occFactor, params.ProductivityTargetPercent)
		result[i] = SimulatedDepartment{
			Department:       dept,
			RecommendedStaff: recommended,
			Gap:              recommended - dept.CurrentStaff,
		}
	}
	return result, nil
}

// Aggregate reduces simulated departments to the organization-wide verdict.
// A net-zero gap counts as hiring.
func Aggregate(simulated []SimulatedDepartment, avgStaffCost int) AggregateVerdict {
	total := 0
	for _, d := range simulated {
		total += d.Gap
	}

	magnitude := total
	if magnitude < 0 {
		magnitude = -magnitude
	}

	return AggregateVerdict{
		TotalGap:             total,
		IsHiring:             total >= 0,
		Magnitude:            magnitude,
		EstimatedMonthlyCost: float64(magnitude) * float64(avgStaffCost),
	}
}

// ceilDiv divides two integers rounding toward positive infinity. b must be positive.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
