package kds

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"staffplan/internal/workforce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "kds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var trend []TrendPoint
	for i := 0; i < 18; i++ {
		trend = append(trend, TrendPoint{Period: fmt.Sprintf("P%02d", i), Revenue: float64(1000 * i)})
	}

	err = store.Seed(context.Background(), SeedData{
		Districts: []District{
			{DistrictID: 5, Name: "Çeşme", Occupancy: 82, Score: 4.8},
			{DistrictID: 6, Name: "Urla", Occupancy: 55, Score: 3.9},
		},
		Summary: Summary{TotalRevenue: "₺1M", AvgOccupancy: "%70", TotalRooms: "420", TotalStaff: "180"},
		Trends:  map[int][]TrendPoint{5: trend},
		Departments: map[int][]workforce.Department{
			5: {
				{Name: "Kitchen", CurrentStaff: 10, BaselineRecommendation: 12, RiskLabel: "CRITICAL", Weight: 20},
				{Name: "Bar", CurrentStaff: 4, BaselineRecommendation: 3, RiskLabel: "LOW"},
			},
		},
	})
	require.NoError(t, err)
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	districts, err := store.Districts(ctx)
	require.NoError(t, err)
	require.Len(t, districts, 2)
	assert.Equal(t, "Çeşme", districts[0].Name)

	summary, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "420", summary.TotalRooms)

	depts, err := store.Departments(ctx, 5)
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.Equal(t, "Kitchen", depts[0].Name)
	assert.Equal(t, 12, depts[0].BaselineRecommendation)
}

func TestStore_TrendsReturnLatestPeriodsInOrder(t *testing.T) {
	store := seededStore(t)

	for _, months := range Horizons {
		points, err := store.Trends(context.Background(), 5, months)
		require.NoError(t, err)
		require.Len(t, points, months)
		assert.Equal(t, "P17", points[len(points)-1].Period)
		assert.Equal(t, fmt.Sprintf("P%02d", 18-months), points[0].Period)
	}
}

func TestStore_MissingDistrictAndEmptyDepartments(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	_, err := store.Departments(ctx, 99)
	assert.ErrorIs(t, err, ErrDistrictNotFound)

	depts, err := store.Departments(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, depts)
}

func TestStore_SummaryDefaultsWhenUnseeded(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer store.Close()

	summary, err := store.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSummary(), summary)
}
