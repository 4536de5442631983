package report

import (
	"fmt"
	"io"

	"staffplan/internal/workforce"

	"github.com/xuri/excelize/v2"
)

const (
	simulationSheet = "Simulation"
	riskSheet       = "Risk"
)

// WriteSimulationXLSX writes a workbook with the simulated departments and
// verdict on one sheet and the risk matrix on another.
func WriteSimulationXLSX(w io.Writer, snap workforce.Snapshot, districtName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", simulationSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(riskSheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Branch", districtName},
		{"Occupancy delta (%)", snap.Scenario.OccupancyDeltaPercent},
		{"Productivity target (%)", snap.Scenario.ProductivityTargetPercent},
		{"Average staff cost", snap.Scenario.AvgStaffCost},
		{},
		{"Department", "Current", "Recommended", "Gap", "Overtime (h)", "Turnover (%)", "Risk"},
	}
	for _, d := range snap.Departments {
		rows = append(rows, []interface{}{d.Name, d.CurrentStaff, d.RecommendedStaff, d.Gap, d.OvertimeHours, d.TurnoverRate, d.RiskLabel})
	}

	summary := Summarize(snap.Verdict)
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Total gap", snap.Verdict.TotalGap},
		[]interface{}{summary.BudgetLabel, snap.Verdict.EstimatedMonthlyCost},
		[]interface{}{summary.Headline},
	)

	if err := writeRows(f, simulationSheet, rows); err != nil {
		return err
	}

	riskRows := [][]interface{}{{"Department", "Overtime (h)", "Turnover (%)", "Weight", "Risk", "Tier"}}
	for _, p := range snap.Risk {
		riskRows = append(riskRows, []interface{}{p.Name, p.X, p.Y, p.Z, p.RiskLabel, string(p.ColorTier)})
	}
	if err := writeRows(f, riskSheet, riskRows); err != nil {
		return err
	}

	if err := f.SetColWidth(simulationSheet, "A", "A", 28); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
