package report

import (
	"fmt"
	"strings"

	"staffplan/internal/visuals"
	"staffplan/internal/workforce"
)

// RenderSimulationMarkdown renders the what-if panel: scenario, department
// table, executive summary and, optionally, Mermaid charts.
func RenderSimulationMarkdown(snap workforce.Snapshot, districtName string, withCharts bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s: Staffing Scenario\n\n", districtName))
	occ := fmt.Sprintf("%d%%", snap.Scenario.OccupancyDeltaPercent)
	if snap.Scenario.OccupancyDeltaPercent > 0 {
		occ = "+" + occ
	}
	sb.WriteString(fmt.Sprintf("- Expected occupancy change: %s\n", occ))
	sb.WriteString(fmt.Sprintf("- Productivity target: %%%d\n", snap.Scenario.ProductivityTargetPercent))
	sb.WriteString(fmt.Sprintf("- Average staff cost: %s\n\n", FormatLira(float64(snap.Scenario.AvgStaffCost))))

	if snap.Placeholder {
		sb.WriteString("_No department data available for this branch yet._\n\n")
	}

	sb.WriteString("| Department | Current | Recommended | Gap |\n")
	sb.WriteString("|---|---:|---:|---:|\n")
	for _, d := range snap.Departments {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %+d |\n", d.Name, d.CurrentStaff, d.RecommendedStaff, d.Gap))
	}

	summary := Summarize(snap.Verdict)
	sb.WriteString("\n### Executive Summary\n\n")
	sb.WriteString(summary.Headline + "\n\n")
	sb.WriteString(fmt.Sprintf("%s: **%s**\n", summary.BudgetLabel, summary.Amount))

	if withCharts {
		if chart := visuals.GenerateStaffingChart(snap.Departments); chart != "" {
			sb.WriteString("\n" + chart + "\n")
		}
		if chart := visuals.GenerateRiskMatrix(snap.Risk); chart != "" {
			sb.WriteString("\n" + chart + "\n")
		}
	}

	return sb.String()
}
