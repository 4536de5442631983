package kds

import (
	"math"

	"staffplan/internal/workforce"
)

// mapDepartment converts an upstream record. Missing numeric fields become 0,
// a missing weight is left at 0 so the domain default applies. A fractional
// baseline is rounded up so the recommendation never falls below it.
func mapDepartment(dto departmentDTO) workforce.Department {
	return workforce.Department{
		Name:                   dto.Name,
		CurrentStaff:           int(math.Round(numberOrZero(dto.Current))),
		BaselineRecommendation: int(math.Ceil(numberOrZero(dto.Baseline))),
		NormalHours:            numberOrZero(dto.Normal),
		OvertimeHours:          numberOrZero(dto.Overtime),
		TurnoverRate:           numberOrZero(dto.Turnover),
		RiskLabel:              dto.Risk,
		Weight:                 numberOrZero(dto.Z),
	}
}

func mapDepartments(dtos []departmentDTO) []workforce.Department {
	out := make([]workforce.Department, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, mapDepartment(d))
	}
	return out
}

func mapTrends(dtos []trendDTO) []TrendPoint {
	out := make([]TrendPoint, 0, len(dtos))
	for _, d := range dtos {
		period := d.Period
		if period == "" {
			period = d.Name
		}
		out = append(out, TrendPoint{
			Period:       period,
			Revenue:      numberOrZero(d.Revenue),
			Occupancy:    numberOrZero(d.Occupancy),
			Productivity: numberOrZero(d.Productivity),
		})
	}
	return out
}

func mapDistricts(dtos []districtDTO) []District {
	out := make([]District, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, District{
			DistrictID: int(numberOrZero(d.DistrictID)),
			Name:       d.Name,
			Occupancy:  numberOrZero(d.Occupancy),
			Score:      numberOrZero(d.Score),
		})
	}
	return out
}
