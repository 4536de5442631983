package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"staffplan/internal/kds"
	"staffplan/internal/session"
	"staffplan/internal/workforce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockKDS struct {
	kds.Client
	districts   []kds.District
	departments map[int][]workforce.Department
	summaryErr  error
	loads       int32
}

func (m *mockKDS) Districts(ctx context.Context) ([]kds.District, error) {
	return m.districts, nil
}

func (m *mockKDS) Summary(ctx context.Context) (kds.Summary, error) {
	if m.summaryErr != nil {
		return kds.Summary{}, m.summaryErr
	}
	return kds.Summary{TotalRevenue: "₺1.2M", AvgOccupancy: "%78", TotalRooms: "640", TotalStaff: "210"}, nil
}

func (m *mockKDS) Trends(ctx context.Context, districtID, months int) ([]kds.TrendPoint, error) {
	out := make([]kds.TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		out = append(out, kds.TrendPoint{Period: "Jan 2025", Revenue: float64(100 * i)})
	}
	return out, nil
}

func (m *mockKDS) Departments(ctx context.Context, districtID int) ([]workforce.Department, error) {
	atomic.AddInt32(&m.loads, 1)
	depts, ok := m.departments[districtID]
	if !ok {
		return nil, kds.ErrDistrictNotFound
	}
	return depts, nil
}

func newTestService(t *testing.T) (*Service, *mockKDS) {
	t.Helper()
	m := &mockKDS{
		districts: []kds.District{
			{DistrictID: 3, Name: "Bornova"},
			{DistrictID: 5, Name: "Çeşme"},
		},
		departments: map[int][]workforce.Department{
			3: nil,
			5: {
				{Name: "A", CurrentStaff: 10, BaselineRecommendation: 10, NormalHours: 160, OvertimeHours: 25, RiskLabel: "LOW"},
				{Name: "B", CurrentStaff: 5, BaselineRecommendation: 8, NormalHours: 160, OvertimeHours: 40, RiskLabel: "KRİTİK"},
			},
		},
	}
	svc := NewService(m, session.NewStore(t.TempDir()), Options{DefaultDistrictID: 5, DefaultHorizon: 6})
	return svc, m
}

func TestSimulate_DefaultDistrictEndToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetScenario(workforce.ScenarioParameters{OccupancyDeltaPercent: 10, ProductivityTargetPercent: 90, AvgStaffCost: 35000}))

	snap, err := svc.Simulate(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, 5, snap.DistrictID)
	assert.Equal(t, 8, snap.Verdict.TotalGap)
	assert.True(t, snap.Verdict.IsHiring)
	assert.Equal(t, 280000.0, snap.Verdict.EstimatedMonthlyCost)
	assert.Equal(t, "Çeşme", svc.DistrictName(5))
}

func TestSimulate_ReusesActiveDistrict(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	_, err := svc.Simulate(ctx, 5)
	require.NoError(t, err)
	_, err = svc.Simulate(ctx, 5)
	require.NoError(t, err)
	_, err = svc.Risk(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&m.loads), "active district should not be refetched")
}

func TestSimulate_EmptyDistrictUsesPlaceholder(t *testing.T) {
	svc, _ := newTestService(t)

	snap, err := svc.Simulate(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, snap.Departments, 1)
	assert.True(t, snap.Placeholder)
	assert.Equal(t, "...", snap.Departments[0].Name)
	assert.True(t, snap.Verdict.IsHiring)
}

func TestLoadDistrict_UnknownDistrict(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.LoadDistrict(context.Background(), 99, 6)
	assert.ErrorIs(t, err, kds.ErrDistrictNotFound)
}

func TestLoadDistrict_KeepsHorizon(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.LoadDistrict(ctx, 5, 12)
	require.NoError(t, err)
	assert.Len(t, view.Trends, 12)

	view, err = svc.LoadDistrict(ctx, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, view.Months)
}

func TestTrends_InvalidHorizon(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Trends(context.Background(), 5, 7, "")
	assert.ErrorIs(t, err, kds.ErrInvalidHorizon)
}

func TestTrends_Localised(t *testing.T) {
	svc, _ := newTestService(t)

	series, err := svc.Trends(context.Background(), 0, 0, "tr")
	require.NoError(t, err)
	assert.Equal(t, 5, series.DistrictID)
	assert.Equal(t, 6, series.Months)
	require.Len(t, series.Points, 6)
	assert.Equal(t, "Oca 2025", series.Points[0].Period)
}

func TestSummary_FallsBackOnError(t *testing.T) {
	svc, m := newTestService(t)
	m.summaryErr = errors.New("upstream down")

	assert.Equal(t, kds.DefaultSummary(), svc.Summary(context.Background()))
}

func TestSetScenario_RejectsOutOfRange(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SetScenario(workforce.ScenarioParameters{OccupancyDeltaPercent: 35, ProductivityTargetPercent: 100, AvgStaffCost: 35000})
	assert.ErrorIs(t, err, workforce.ErrInvalidScenario)
	assert.Equal(t, workforce.DefaultScenario(), svc.Scenario())
}

func TestWorkload_ActiveDistrict(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.Workload(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 200.0, rows[1].TotalHours)
	assert.True(t, rows[1].OverLimit)
}

func TestRiskAndWorkload_StayOnRequestedDistrict(t *testing.T) {
	svc, m := newTestService(t)
	m.departments[3] = []workforce.Department{{Name: "Z", CurrentStaff: 2, BaselineRecommendation: 2, RiskLabel: "HIGH"}}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			points, err := svc.Risk(context.Background(), 5)
			assert.NoError(t, err)
			if assert.Len(t, points, 2) {
				assert.Equal(t, "A", points[0].Name)
			}
		}()
		go func() {
			defer wg.Done()
			rows, err := svc.Workload(context.Background(), 3)
			assert.NoError(t, err)
			if assert.Len(t, rows, 1) {
				assert.Equal(t, "Z", rows[0].Name)
			}
		}()
		go func() {
			defer wg.Done()
			snap, err := svc.Simulate(context.Background(), 5)
			assert.NoError(t, err)
			assert.Equal(t, 5, snap.DistrictID)
			assert.Len(t, snap.Departments, 2)
		}()
	}
	wg.Wait()
}
