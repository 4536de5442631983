package workforce

// DefaultWeight is the visual sizing weight used when the upstream "z" value is missing.
const DefaultWeight = 10.0

// Risk labels produced by the upstream classifier. Only Critical and High are
// treated specially; every other label is opaque.
const (
	RiskCritical = "CRITICAL"
	RiskHigh     = "HIGH"
)

// Department holds the baseline staffing metrics for one department of a district.
type Department struct {
	Name                   string  `json:"name"`
	CurrentStaff           int     `json:"current_staff"`
	BaselineRecommendation int     `json:"baseline_recommendation"`
	NormalHours            float64 `json:"normal_hours,omitempty"`
	OvertimeHours          float64 `json:"overtime_hours"`
	TurnoverRate           float64 `json:"turnover_rate"`
	RiskLabel              string  `json:"risk_label"`
	Weight                 float64 `json:"weight"`
}

// EffectiveWeight returns the weight, falling back to DefaultWeight when unset.
func (d Department) EffectiveWeight() float64 {
	if d.Weight <= 0 {
		return DefaultWeight
	}
	return d.Weight
}

// SimulatedDepartment is a Department with the scenario-adjusted recommendation.
type SimulatedDepartment struct {
	Department
	RecommendedStaff int `json:"recommended_staff"`
	Gap              int `json:"gap"`
}

// AggregateVerdict is the organization-wide hiring or reduction verdict.
type AggregateVerdict struct {
	TotalGap             int     `json:"total_gap"`
	IsHiring             bool    `json:"is_hiring"`
	Magnitude            int     `json:"magnitude"`
	EstimatedMonthlyCost float64 `json:"estimated_monthly_cost"`
}

// ColorTier is the coarse visual classification of a risk point.
type ColorTier string

const (
	TierDanger  ColorTier = "danger"
	TierWarning ColorTier = "warning"
	TierSuccess ColorTier = "success"
)

// RiskPoint is one department placed on the overtime/turnover risk matrix.
type RiskPoint struct {
	Name      string    `json:"name"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Z         float64   `json:"z"`
	RiskLabel string    `json:"risk_label"`
	ColorTier ColorTier `json:"color_tier"`
}

// NormalizeRiskLabel maps upstream spellings onto the canonical labels.
// The classifier emits Turkish labels (KRİTİK, YÜKSEK); both spellings are
// accepted. Matching is exact, so "critical" stays an unrecognised label.
func NormalizeRiskLabel(label string) string {
	switch label {
	case RiskCritical, "KRİTİK", "KRITIK":
		return RiskCritical
	case RiskHigh, "YÜKSEK", "YUKSEK":
		return RiskHigh
	}
	return label
}
