package visuals

import (
	"fmt"
	"math"
	"strings"

	"staffplan/internal/kds"
	"staffplan/internal/workforce"
)

// Quadrant point names are unquoted, so strip the characters the parser reserves.
var pointNameReplacer = strings.NewReplacer(":", " ", "[", " ", "]", " ", "\"", "")

func quoteLabel(s string) string {
	return fmt.Sprintf("\"%s\"", strings.ReplaceAll(s, "\"", "'"))
}

// GenerateStaffingChart creates a Mermaid bar chart of current vs recommended headcount per department.
func GenerateStaffingChart(departments []workforce.SimulatedDepartment) string {
	if len(departments) == 0 {
		return ""
	}

	var labels []string
	var current []string
	var recommended []string
	maxVal := 0

	for _, d := range departments {
		labels = append(labels, quoteLabel(d.Name))
		current = append(current, fmt.Sprintf("%d", d.CurrentStaff))
		recommended = append(recommended, fmt.Sprintf("%d", d.RecommendedStaff))
		if d.CurrentStaff > maxVal {
			maxVal = d.CurrentStaff
		}
		if d.RecommendedStaff > maxVal {
			maxVal = d.RecommendedStaff
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Staffing Simulation (Current vs Recommended)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Headcount\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(current, ", ")))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(recommended, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateRiskMatrix creates a Mermaid quadrant chart of overtime vs turnover.
// Axes are scaled so the reference guides sit on the quadrant split.
func GenerateRiskMatrix(points []workforce.RiskPoint) string {
	if len(points) == 0 {
		return ""
	}

	scale := func(v, guide float64) float64 {
		return math.Max(0, math.Min(1, v/(2*guide)))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("quadrantChart\n")
	sb.WriteString("    title Staff Risk Matrix (Overtime vs Turnover)\n")
	sb.WriteString(fmt.Sprintf("    x-axis Low Overtime --> Over %.0fh\n", workforce.OvertimeGuideHours))
	sb.WriteString(fmt.Sprintf("    y-axis Low Turnover --> Over %.0f%%\n", workforce.TurnoverGuidePercent))
	sb.WriteString("    quadrant-1 Act now\n")
	sb.WriteString("    quadrant-2 Retention\n")
	sb.WriteString("    quadrant-3 Stable\n")
	sb.WriteString("    quadrant-4 Workload\n")
	for _, p := range points {
		name := pointNameReplacer.Replace(p.Name)
		sb.WriteString(fmt.Sprintf("    %s: [%.2f, %.2f]\n", name, scale(p.X, workforce.OvertimeGuideHours), scale(p.Y, workforce.TurnoverGuidePercent)))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateTrendChart creates a Mermaid line chart of revenue over the selected horizon.
func GenerateTrendChart(points []kds.TrendPoint) string {
	if len(points) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	for _, p := range points {
		labels = append(labels, quoteLabel(p.Period))
		values = append(values, fmt.Sprintf("%.0f", p.Revenue))
		if p.Revenue > maxVal {
			maxVal = p.Revenue
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Revenue Trend\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Revenue\" 0 --> %d\n", int(math.Ceil(maxVal*1.1))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// ProductivityTarget is the revenue-per-staff reference drawn on the productivity chart.
const ProductivityTarget = 12000.0

// GenerateProductivityChart plots revenue per staff against the fixed target line.
func GenerateProductivityChart(points []kds.TrendPoint) string {
	if len(points) == 0 {
		return ""
	}

	labels := make([]string, 0, len(points))
	values := make([]string, 0, len(points))
	targets := make([]string, 0, len(points))
	maxVal := ProductivityTarget

	for _, p := range points {
		labels = append(labels, quoteLabel(p.Period))
		values = append(values, fmt.Sprintf("%.0f", p.Productivity))
		targets = append(targets, fmt.Sprintf("%.0f", ProductivityTarget))
		if p.Productivity > maxVal {
			maxVal = p.Productivity
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Revenue per Staff vs Target\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Revenue per staff\" 0 --> %d\n", int(math.Ceil(maxVal*1.1))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(targets, ", ")))
	sb.WriteString("```")
	return sb.String()
}
