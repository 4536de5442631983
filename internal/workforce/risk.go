package workforce

// Reference guides drawn on the risk matrix. They are annotations only; the
// upstream label decides the tier.
const (
	OvertimeGuideHours   = 30.0
	TurnoverGuidePercent = 10.0
)

// TierForLabel maps a risk label to its color tier.
func TierForLabel(label string) ColorTier {
	switch NormalizeRiskLabel(label) {
	case RiskCritical:
		return TierDanger
	case RiskHigh:
		return TierWarning
	default:
		return TierSuccess
	}
}

// ProjectRisk places each department on the overtime (x) / turnover (y) matrix.
func ProjectRisk(departments []Department) []RiskPoint {
	points := make([]RiskPoint, 0, len(departments))
	for _, d := range departments {
		points = append(points, RiskPoint{
			Name:      d.Name,
			X:         d.OvertimeHours,
			Y:         d.TurnoverRate,
			Z:         d.EffectiveWeight(),
			RiskLabel: d.RiskLabel,
			ColorTier: TierForLabel(d.RiskLabel),
		})
	}
	return points
}
