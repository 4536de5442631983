package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"staffplan/internal/kds"
	"staffplan/internal/workforce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSnapshot(t *testing.T) workforce.Snapshot {
	t.Helper()
	p := workforce.NewPlanner(workforce.DefaultScenario())
	p.SetDataset(workforce.NewDataset(5, []workforce.Department{
		{Name: "A", CurrentStaff: 10, BaselineRecommendation: 10, OvertimeHours: 5, TurnoverRate: 2, RiskLabel: "LOW"},
		{Name: "B", CurrentStaff: 5, BaselineRecommendation: 8, OvertimeHours: 40, TurnoverRate: 15, RiskLabel: "CRITICAL"},
	}))
	require.NoError(t, p.SetScenario(workforce.ScenarioParameters{OccupancyDeltaPercent: 10, ProductivityTargetPercent: 90, AvgStaffCost: 35000}))
	snap, err := p.Recompute()
	require.NoError(t, err)
	return snap
}

func TestFormatLira(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₺0"},
		{999, "₺999"},
		{35000, "₺35.000"},
		{280000, "₺280.000"},
		{1234567, "₺1.234.567"},
		{-60000, "-₺60.000"},
		{279999.6, "₺280.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLira(tt.in), "FormatLira(%v)", tt.in)
	}
}

func TestSummarize(t *testing.T) {
	hiring := Summarize(workforce.AggregateVerdict{TotalGap: 8, IsHiring: true, Magnitude: 8, EstimatedMonthlyCost: 280000})
	assert.True(t, hiring.IsHiring)
	assert.Contains(t, hiring.Headline, "hiring 8 new staff")
	assert.Equal(t, "Estimated monthly additional budget", hiring.BudgetLabel)
	assert.Equal(t, "₺280.000", hiring.Amount)

	reduce := Summarize(workforce.AggregateVerdict{TotalGap: -2, IsHiring: false, Magnitude: 2, EstimatedMonthlyCost: 70000})
	assert.False(t, reduce.IsHiring)
	assert.Contains(t, reduce.Headline, "surplus of 2 staff")
	assert.Equal(t, "Estimated monthly staff savings", reduce.BudgetLabel)

	zero := Summarize(workforce.AggregateVerdict{IsHiring: true})
	assert.True(t, zero.IsHiring, "a net-zero gap is phrased as hiring")
}

func TestWriteDistrictsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDistrictsCSV(&buf, []kds.District{
		{DistrictID: 5, Name: "Çeşme", Occupancy: 81.6, Score: 4.82},
		{DistrictID: 6, Name: `Alsancak "Port"`, Occupancy: 64.2, Score: 3.9},
	})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8BOM), "missing BOM")

	lines := strings.Split(strings.TrimPrefix(out, utf8BOM), "\n")
	assert.Equal(t, "Branch;Occupancy (%);Performance Score;Status", lines[0])
	assert.Equal(t, `"Çeşme";82;4.8;"Excellent"`, lines[1])
	assert.Equal(t, `"Alsancak ""Port""";64;3.9;"Low"`, lines[2])
}

func TestDistrictsCSVFilename(t *testing.T) {
	assert.Equal(t, "Branch_Report_2025-03-09.csv", DistrictsCSVFilename(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)))
}

func TestWriteSimulationXLSX(t *testing.T) {
	snap := sampleSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSimulationXLSX(&buf, snap, "Çeşme"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{simulationSheet, riskSheet}, f.GetSheetList())

	branch, err := f.GetCellValue(simulationSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Çeşme", branch)

	header, err := f.GetCellValue(simulationSheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Department", header)

	recommended, err := f.GetCellValue(simulationSheet, "C7")
	require.NoError(t, err)
	assert.Equal(t, "13", recommended)

	tier, err := f.GetCellValue(riskSheet, "F3")
	require.NoError(t, err)
	assert.Equal(t, "danger", tier)
}

func TestRenderSimulationMarkdown(t *testing.T) {
	snap := sampleSnapshot(t)

	md := RenderSimulationMarkdown(snap, "Çeşme", true)
	assert.Contains(t, md, "Expected occupancy change: +10%")
	assert.Contains(t, md, "| A | 10 | 13 | +3 |")
	assert.Contains(t, md, "| B | 5 | 10 | +5 |")
	assert.Contains(t, md, "**₺280.000**")
	assert.Contains(t, md, "xychart-beta")
	assert.Contains(t, md, "quadrantChart")

	plain := RenderSimulationMarkdown(snap, "Çeşme", false)
	assert.NotContains(t, plain, "```mermaid")
}
