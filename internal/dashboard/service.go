// Package dashboard holds the state of one manager's dashboard session: the
// selected district, its loaded dataset and the scenario planner. Both the MCP
// and the HTTP surfaces drive it.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"staffplan/internal/kds"
	"staffplan/internal/session"
	"staffplan/internal/workforce"

	"github.com/rs/zerolog/log"
)

// Options are the defaults applied before the manager picks anything.
type Options struct {
	DefaultDistrictID int
	DefaultHorizon    int
	DefaultScenario   workforce.ScenarioParameters
}

// Service is safe for concurrent use.
type Service struct {
	client   kds.Client
	sessions *session.Store
	planner  *workforce.Planner
	opts     Options

	// load serialises dataset swaps against recomputation so a snapshot
	// always belongs to the district it was requested for.
	load sync.Mutex

	mu        sync.Mutex
	districts []kds.District
	view      *kds.DistrictView
}

// NewService wires a provider and a session store into a dashboard.
func NewService(client kds.Client, sessions *session.Store, opts Options) *Service {
	if opts.DefaultHorizon == 0 {
		opts.DefaultHorizon = kds.Horizons[0]
	}
	if opts.DefaultScenario == (workforce.ScenarioParameters{}) {
		opts.DefaultScenario = workforce.DefaultScenario()
	}
	return &Service{
		client:   client,
		sessions: sessions,
		planner:  workforce.NewPlanner(opts.DefaultScenario),
		opts:     opts,
	}
}

// Sessions exposes the session flag store.
func (s *Service) Sessions() *session.Store {
	return s.sessions
}

// Districts fetches the branch list and remembers it for name lookups.
func (s *Service) Districts(ctx context.Context) ([]kds.District, error) {
	districts, err := s.client.Districts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}

	s.mu.Lock()
	s.districts = districts
	s.mu.Unlock()

	return districts, nil
}

// Summary returns the group-wide figures. A failed fetch degrades to the
// zero-valued display summary.
func (s *Service) Summary(ctx context.Context) kds.Summary {
	sum, err := s.client.Summary(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Summary fetch failed, showing defaults")
		return kds.DefaultSummary()
	}
	return sum
}

// TrendSeries is the trend data of one district over a horizon.
type TrendSeries struct {
	DistrictID int              `json:"district_id"`
	Months     int              `json:"months"`
	Points     []kds.TrendPoint `json:"points"`
}

// Trends returns the trend series of a district, with period labels
// localised when locale is "tr".
func (s *Service) Trends(ctx context.Context, districtID, months int, locale string) (TrendSeries, error) {
	if months == 0 {
		months = s.horizon()
	}
	if err := kds.ValidateHorizon(months); err != nil {
		return TrendSeries{}, err
	}
	id, err := s.resolve(ctx, districtID)
	if err != nil {
		return TrendSeries{}, err
	}
	points, err := s.client.Trends(ctx, id, months)
	if err != nil {
		return TrendSeries{}, fmt.Errorf("failed to fetch trends for district %d: %w", id, err)
	}
	return TrendSeries{DistrictID: id, Months: months, Points: kds.LocalizeTrends(points, locale)}, nil
}

// LoadDistrict fetches trends and departments of a district and makes its
// dataset the planner's input. A zero districtID selects the default district.
// A zero months keeps the current horizon.
func (s *Service) LoadDistrict(ctx context.Context, districtID, months int) (*kds.DistrictView, error) {
	s.load.Lock()
	defer s.load.Unlock()
	return s.loadDistrict(ctx, districtID, months)
}

func (s *Service) loadDistrict(ctx context.Context, districtID, months int) (*kds.DistrictView, error) {
	id, err := s.resolve(ctx, districtID)
	if err != nil {
		return nil, err
	}
	if months == 0 {
		months = s.horizon()
	}

	view, err := kds.LoadDistrictView(ctx, s.client, id, months)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	s.planner.SetDataset(view.Dataset)
	return view, nil
}

// ActiveDistrict returns the currently loaded district view, if any.
func (s *Service) ActiveDistrict() (*kds.DistrictView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.view != nil
}

// DistrictName looks the name up in the last fetched branch list.
func (s *Service) DistrictName(districtID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := kds.FindDistrict(s.districts, districtID); ok {
		return d.Name
	}
	return fmt.Sprintf("District %d", districtID)
}

// Scenario returns the current scenario parameters.
func (s *Service) Scenario() workforce.ScenarioParameters {
	return s.planner.Scenario()
}

// SetScenario validates and applies new scenario parameters.
func (s *Service) SetScenario(params workforce.ScenarioParameters) error {
	if err := s.planner.SetScenario(params); err != nil {
		return err
	}
	log.Info().Int("occupancy", params.OccupancyDeltaPercent).Int("productivity", params.ProductivityTargetPercent).
		Int("cost", params.AvgStaffCost).Msg("Scenario updated")
	return nil
}

// Simulate recomputes the scenario for a district, loading it first when it
// is not the active one.
func (s *Service) Simulate(ctx context.Context, districtID int) (workforce.Snapshot, error) {
	s.load.Lock()
	defer s.load.Unlock()

	if _, err := s.ensureLoaded(ctx, districtID); err != nil {
		return workforce.Snapshot{}, err
	}
	return s.planner.Recompute()
}

// Risk projects the departments of a district onto the risk matrix.
func (s *Service) Risk(ctx context.Context, districtID int) ([]workforce.RiskPoint, error) {
	view, err := s.loaded(ctx, districtID)
	if err != nil {
		return nil, err
	}
	return workforce.ProjectRisk(view.Dataset.SafeDepartments()), nil
}

// Workload lists the hours per department of a district.
func (s *Service) Workload(ctx context.Context, districtID int) ([]workforce.WorkloadRow, error) {
	view, err := s.loaded(ctx, districtID)
	if err != nil {
		return nil, err
	}
	return workforce.Workload(view.Dataset.Departments), nil
}

func (s *Service) loaded(ctx context.Context, districtID int) (*kds.DistrictView, error) {
	s.load.Lock()
	defer s.load.Unlock()
	return s.ensureLoaded(ctx, districtID)
}

// ensureLoaded returns the view the caller should work from, loading it when
// a different district is active. The caller holds s.load.
func (s *Service) ensureLoaded(ctx context.Context, districtID int) (*kds.DistrictView, error) {
	s.mu.Lock()
	view := s.view
	s.mu.Unlock()

	if view != nil && (districtID == 0 || view.DistrictID == districtID) {
		return view, nil
	}
	return s.loadDistrict(ctx, districtID, 0)
}

func (s *Service) horizon() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != nil {
		return s.view.Months
	}
	return s.opts.DefaultHorizon
}

// resolve maps a zero id to the default district, falling back to the first
// district the provider knows.
func (s *Service) resolve(ctx context.Context, districtID int) (int, error) {
	if districtID != 0 {
		return districtID, nil
	}

	s.mu.Lock()
	if s.view != nil {
		id := s.view.DistrictID
		s.mu.Unlock()
		return id, nil
	}
	districts := s.districts
	s.mu.Unlock()

	if districts == nil {
		var err error
		if districts, err = s.Districts(ctx); err != nil {
			return 0, err
		}
	}

	id := kds.ResolveDistrict(districts, s.opts.DefaultDistrictID)
	if id == 0 {
		return 0, kds.ErrDistrictNotFound
	}
	return id, nil
}
