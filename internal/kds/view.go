package kds

import (
	"context"
	"fmt"

	"staffplan/internal/workforce"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DistrictView is everything the dashboard shows for one selected district.
type DistrictView struct {
	DistrictID int               `json:"district_id"`
	Months     int               `json:"months"`
	Trends     []TrendPoint      `json:"trends"`
	Dataset    workforce.Dataset `json:"dataset"`
}

// LoadDistrictView fetches the trend series and the department dataset of a
// district concurrently. The dataset receives a fresh version.
func LoadDistrictView(ctx context.Context, client Client, districtID, months int) (*DistrictView, error) {
	if err := ValidateHorizon(months); err != nil {
		return nil, err
	}

	var (
		trends      []TrendPoint
		departments []workforce.Department
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trends, err = client.Trends(gctx, districtID, months)
		if err != nil {
			return fmt.Errorf("failed to fetch trends for district %d: %w", districtID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		departments, err = client.Departments(gctx, districtID)
		if err != nil {
			return fmt.Errorf("failed to fetch departments for district %d: %w", districtID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := workforce.NewDataset(districtID, departments)
	log.Info().Int("district", districtID).Int("months", months).Int("departments", len(departments)).
		Str("version", ds.Version).Msg("District view loaded")

	return &DistrictView{
		DistrictID: districtID,
		Months:     months,
		Trends:     trends,
		Dataset:    ds,
	}, nil
}

// ResolveDistrict returns preferred when it exists in districts, otherwise the
// first district. It returns 0 when there are no districts.
func ResolveDistrict(districts []District, preferred int) int {
	for _, d := range districts {
		if d.DistrictID == preferred {
			return preferred
		}
	}
	if len(districts) > 0 {
		return districts[0].DistrictID
	}
	return 0
}

// FindDistrict looks up a district by id.
func FindDistrict(districts []District, id int) (District, bool) {
	for _, d := range districts {
		if d.DistrictID == id {
			return d, true
		}
	}
	return District{}, false
}
