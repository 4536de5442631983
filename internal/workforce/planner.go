package workforce

import (
	"sync"

	"staffplan/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Snapshot is the output of one recomputation. It carries no identity of its
// own beyond the dataset version and scenario it was computed from.
type Snapshot struct {
	DatasetVersion string                `json:"dataset_version"`
	DistrictID     int                   `json:"district_id"`
	Placeholder    bool                  `json:"placeholder"`
	Scenario       ScenarioParameters    `json:"scenario"`
	Departments    []SimulatedDepartment `json:"departments"`
	Verdict        AggregateVerdict      `json:"verdict"`
	Risk           []RiskPoint           `json:"risk"`
}

type memoKey struct {
	version string
	occ     int
	prod    int
}

// Planner holds the current dataset and scenario of one session and exposes
// an explicit Recompute entry point to be called after any input change.
type Planner struct {
	mu       sync.Mutex
	dataset  Dataset
	scenario ScenarioParameters

	// Simulation-stage memo. Staff cost only affects aggregation and is not part of the key.
	memoKey memoKey
	memo    []SimulatedDepartment
}

// NewPlanner creates a planner with an empty dataset and the given scenario.
func NewPlanner(scenario ScenarioParameters) *Planner {
	return &Planner{
		dataset:  NewDataset(0, nil),
		scenario: scenario,
	}
}

// SetDataset replaces the dataset wholesale. The scenario is retained.
func (p *Planner) SetDataset(ds Dataset) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dataset = ds
	metrics.DatasetLoadsTotal.Inc()
	log.Debug().Str("version", ds.Version).Int("district", ds.DistrictID).Int("departments", len(ds.Departments)).Msg("Planner dataset replaced")
}

// Dataset returns the current dataset.
func (p *Planner) Dataset() Dataset {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dataset
}

// Scenario returns the current scenario.
func (p *Planner) Scenario() ScenarioParameters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scenario
}

// SetScenario validates and stores new scenario parameters.
func (p *Planner) SetScenario(params ScenarioParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scenario = params
	return nil
}

// Recompute runs simulation, aggregation and risk projection on the current inputs.
func (p *Planner) Recompute() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	departments := p.dataset.SafeDepartments()
	key := memoKey{
		version: p.dataset.Version,
		occ:     p.scenario.OccupancyDeltaPercent,
		prod:    p.scenario.ProductivityTargetPercent,
	}

	cached := p.memo != nil && p.memoKey == key
	if !cached {
		simulated, err := Simulate(departments, p.scenario)
		if err != nil {
			return Snapshot{}, err
		}
		p.memo = simulated
		p.memoKey = key
	}

	verdict := Aggregate(p.memo, p.scenario.AvgStaffCost)
	metrics.ObserveSimulation(verdict.TotalGap, verdict.EstimatedMonthlyCost, cached)

	out := make([]SimulatedDepartment, len(p.memo))
	copy(out, p.memo)

	return Snapshot{
		DatasetVersion: p.dataset.Version,
		DistrictID:     p.dataset.DistrictID,
		Placeholder:    p.dataset.IsEmpty(),
		Scenario:       p.scenario,
		Departments:    out,
		Verdict:        verdict,
		Risk:           ProjectRisk(departments),
	}, nil
}
