package workforce

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidScenario is returned when scenario parameters fall outside their declared domain.
var ErrInvalidScenario = errors.New("invalid scenario parameters")

// Bound describes the valid range and step of a scenario parameter.
type Bound struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// Contains reports whether v lies within the range and on a step boundary.
func (b Bound) Contains(v int) bool {
	if v < b.Min || v > b.Max {
		return false
	}
	return (v-b.Min)%b.Step == 0
}

var (
	OccupancyDeltaBound     = Bound{Min: -20, Max: 30, Step: 5}
	ProductivityTargetBound = Bound{Min: 80, Max: 120, Step: 5}
	AvgStaffCostBound       = Bound{Min: 20000, Max: 60000, Step: 1000}
)

// ScenarioParameters are the three tunable what-if inputs.
type ScenarioParameters struct {
	OccupancyDeltaPercent     int `json:"occupancy_delta_percent"`
	ProductivityTargetPercent int `json:"productivity_target_percent"`
	AvgStaffCost              int `json:"avg_staff_cost"`
}

// DefaultScenario returns the neutral scenario: no occupancy change, 100% productivity.
func DefaultScenario() ScenarioParameters {
	return ScenarioParameters{
		OccupancyDeltaPercent:     0,
		ProductivityTargetPercent: 100,
		AvgStaffCost:              35000,
	}
}

// Validate checks every parameter against its range and step.
// Simulate does not call it; input surfaces do before accepting a scenario.
func (p ScenarioParameters) Validate() error {
	var problems []string
	if !OccupancyDeltaBound.Contains(p.OccupancyDeltaPercent) {
		problems = append(problems, fmt.Sprintf("occupancy delta %d not in [%d,%d] step %d",
			p.OccupancyDeltaPercent, OccupancyDeltaBound.Min, OccupancyDeltaBound.Max, OccupancyDeltaBound.Step))
	}
	if !ProductivityTargetBound.Contains(p.ProductivityTargetPercent) {
		problems = append(problems, fmt.Sprintf("productivity target %d not in [%d,%d] step %d",
			p.ProductivityTargetPercent, ProductivityTargetBound.Min, ProductivityTargetBound.Max, ProductivityTargetBound.Step))
	}
	if !AvgStaffCostBound.Contains(p.AvgStaffCost) {
		problems = append(problems, fmt.Sprintf("average staff cost %d not in [%d,%d] step %d",
			p.AvgStaffCost, AvgStaffCostBound.Min, AvgStaffCostBound.Max, AvgStaffCostBound.Step))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidScenario, strings.Join(problems, "; "))
	}
	return nil
}
