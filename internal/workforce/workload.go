package workforce

// LegalHoursLimit is the monthly working-hours ceiling shown on the workload view.
const LegalHoursLimit = 180.0

// WorkloadRow is the stacked normal/overtime hours of one department.
type WorkloadRow struct {
	Name          string  `json:"name"`
	NormalHours   float64 `json:"normal_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	TotalHours    float64 `json:"total_hours"`
	OverLimit     bool    `json:"over_limit"`
}

// Workload lists the hours of every department against LegalHoursLimit.
func Workload(departments []Department) []WorkloadRow {
	rows := make([]WorkloadRow, 0, len(departments))
	for _, d := range departments {
		total := d.NormalHours + d.OvertimeHours
		rows = append(rows, WorkloadRow{
			Name:          d.Name,
			NormalHours:   d.NormalHours,
			OvertimeHours: d.OvertimeHours,
			TotalHours:    total,
			OverLimit:     total > LegalHoursLimit,
		})
	}
	return rows
}
