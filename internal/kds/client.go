package kds

import (
	"context"
	"errors"
	"time"

	"staffplan/internal/workforce"
)

var (
	// ErrInvalidHorizon is returned for a trend horizon other than 6, 12 or 18 periods.
	ErrInvalidHorizon = errors.New("trend horizon must be 6, 12 or 18")
	// ErrDistrictNotFound is returned when the provider has no such district.
	ErrDistrictNotFound = errors.New("district not found")
)

// Horizons lists the selectable trend horizons in periods (months).
var Horizons = []int{6, 12, 18}

// ValidateHorizon checks months against the selectable horizons.
func ValidateHorizon(months int) error {
	for _, h := range Horizons {
		if h == months {
			return nil
		}
	}
	return ErrInvalidHorizon
}

// District is one hotel branch on the map.
type District struct {
	DistrictID int     `json:"districtId"`
	Name       string  `json:"name"`
	Occupancy  float64 `json:"occupancy"`
	Score      float64 `json:"score"`
}

// Summary holds group-wide figures, already formatted for display.
type Summary struct {
	TotalRevenue string `json:"totalRevenue"`
	AvgOccupancy string `json:"avgOccupancy"`
	TotalRooms   string `json:"totalRooms"`
	TotalStaff   string `json:"totalStaff"`
}

// DefaultSummary is shown when the provider has not produced a summary.
func DefaultSummary() Summary {
	return Summary{TotalRevenue: "₺0", AvgOccupancy: "%0", TotalRooms: "0", TotalStaff: "0"}
}

// TrendPoint is one period of the revenue/occupancy/productivity series.
type TrendPoint struct {
	Period       string  `json:"period"`
	Revenue      float64 `json:"revenue"`
	Occupancy    float64 `json:"occupancy"`
	Productivity float64 `json:"productivity"`
}

// Client is the data-acquisition collaborator.
type Client interface {
	Districts(ctx context.Context) ([]District, error)
	Summary(ctx context.Context) (Summary, error)
	Trends(ctx context.Context, districtID int, months int) ([]TrendPoint, error)
	Departments(ctx context.Context, districtID int) ([]workforce.Department, error)
}

// Config holds the connection settings for the upstream KDS API or local store.
type Config struct {
	BaseURL string
	Token   string
	DBPath  string

	// Performance Settings
	RequestDelay time.Duration
	CacheTTL     time.Duration
}

// NewClient returns the HTTP client when a base URL is configured, otherwise
// the local SQLite store.
func NewClient(cfg Config) (Client, error) {
	if cfg.BaseURL != "" {
		return NewHTTPClient(cfg), nil
	}
	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}
