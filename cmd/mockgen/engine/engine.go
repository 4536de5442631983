package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"staffplan/internal/kds"
	"staffplan/internal/workforce"
)

type GeneratorConfig struct {
	Scenario string // "steady", "pressure" or "slump"
	Months   int
	Seed     int64
	Now      time.Time
}

var districtNames = []string{"Alsancak", "Bornova", "Karşıyaka", "Buca", "Çeşme", "Urla", "Foça", "Seferihisar"}

type departmentProfile struct {
	name     string
	baseline int
	weight   float64
}

var departmentProfiles = []departmentProfile{
	{"Front Office", 8, 12},
	{"Housekeeping", 18, 20},
	{"Kitchen", 14, 16},
	{"F&B Service", 12, 14},
	{"Technical", 5, 8},
	{"Spa", 4, 6},
}

// Generate builds a complete provider dataset. The same seed always yields
// the same data.
func Generate(cfg GeneratorConfig) kds.SeedData {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Months <= 0 {
		cfg.Months = kds.Horizons[len(kds.Horizons)-1]
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	monthStart := time.Date(cfg.Now.Year(), cfg.Now.Month(), 1, 0, 0, 0, 0, cfg.Now.Location())

	// 1. Scenario shape
	occBase, overtimeBase, turnoverBase := 74.0, 18.0, 6.0
	switch cfg.Scenario {
	case "pressure":
		occBase, overtimeBase, turnoverBase = 88.0, 34.0, 12.0
	case "slump":
		occBase, overtimeBase, turnoverBase = 55.0, 8.0, 4.0
	}

	data := kds.SeedData{
		Trends:      make(map[int][]kds.TrendPoint),
		Departments: make(map[int][]workforce.Department),
	}

	var totalRevenue, totalOcc float64
	var totalRooms, totalStaff int

	for i, name := range districtNames {
		id := i + 1
		occ := clamp(occBase+rng.NormFloat64()*6, 30, 99)
		score := clamp(3.6+(occ-50)/40+rng.Float64()*0.3, 3.0, 5.0)

		data.Districts = append(data.Districts, kds.District{
			DistrictID: id,
			Name:       name,
			Occupancy:  round1(occ),
			Score:      round1(score),
		})

		// 2. Monthly trend, oldest first, ending in the current month
		rooms := 60 + rng.Intn(90)
		var points []kds.TrendPoint
		for m := cfg.Months - 1; m >= 0; m-- {
			period := monthStart.AddDate(0, -m, 0)
			season := 1 + 0.25*math.Sin(2*math.Pi*float64(period.Month()-4)/12)
			monthOcc := clamp(occ*season+rng.NormFloat64()*3, 20, 100)
			revenue := float64(rooms) * monthOcc * 55 * (0.9 + rng.Float64()*0.2)
			points = append(points, kds.TrendPoint{
				Period:       period.Format("Jan 2006"),
				Revenue:      math.Round(revenue),
				Occupancy:    round1(monthOcc),
				Productivity: math.Round(revenue / float64(rooms/2+1) * 0.9),
			})
			totalRevenue += revenue
		}
		data.Trends[id] = points

		// 3. Departments; the last district is left empty to exercise the placeholder path
		if i == len(districtNames)-1 {
			continue
		}
		scale := float64(rooms) / 100
		var depts []workforce.Department
		for _, p := range departmentProfiles {
			baseline := int(math.Round(float64(p.baseline) * scale))
			current := baseline + rng.Intn(5) - 2
			if current < 0 {
				current = 0
			}
			overtime := clamp(overtimeBase+rng.NormFloat64()*8, 0, 70)
			turnover := clamp(turnoverBase+rng.NormFloat64()*4, 0, 40)
			depts = append(depts, workforce.Department{
				Name:                   p.name,
				CurrentStaff:           current,
				BaselineRecommendation: baseline,
				NormalHours:            160 + float64(rng.Intn(5)*4),
				OvertimeHours:          round1(overtime),
				TurnoverRate:           round1(turnover),
				RiskLabel:              riskLabel(overtime, turnover),
				Weight:                 p.weight,
			})
			totalStaff += current
		}
		data.Departments[id] = depts

		totalRooms += rooms
		totalOcc += occ
	}

	data.Summary = kds.Summary{
		TotalRevenue: fmt.Sprintf("₺%.1fM", totalRevenue/1e6),
		AvgOccupancy: fmt.Sprintf("%%%.0f", totalOcc/float64(len(districtNames)-1)),
		TotalRooms:   fmt.Sprintf("%d", totalRooms),
		TotalStaff:   fmt.Sprintf("%d", totalStaff),
	}
	return data
}

// riskLabel mimics the upstream classifier's Turkish labels.
func riskLabel(overtime, turnover float64) string {
	switch {
	case overtime > 2*workforce.OvertimeGuideHours || turnover > 2*workforce.TurnoverGuidePercent:
		return "KRİTİK"
	case overtime > workforce.OvertimeGuideHours || turnover > workforce.TurnoverGuidePercent:
		return "YÜKSEK"
	default:
		return "DÜŞÜK"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Save writes data into the SQLite store at dbPath, replacing its contents.
func Save(ctx context.Context, dbPath string, data kds.SeedData) error {
	store, err := kds.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Seed(ctx, data)
}
