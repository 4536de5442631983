package mcp

import (
	"context"
	"fmt"
	"strings"

	"staffplan/internal/kds"
	"staffplan/internal/report"
	"staffplan/internal/visuals"
	"staffplan/internal/workforce"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type sessionOutput struct {
	Authenticated bool `json:"authenticated"`
}

type districtRow struct {
	DistrictID int     `json:"district_id"`
	Name       string  `json:"name"`
	Occupancy  float64 `json:"occupancy"`
	Score      float64 `json:"score"`
	Status     string  `json:"status"`
}

type districtsOutput struct {
	Districts []districtRow `json:"districts"`
}

type trendsOutput struct {
	DistrictID         int              `json:"district_id"`
	Months             int              `json:"months"`
	ProductivityTarget float64          `json:"productivity_target"`
	Trends             []kds.TrendPoint `json:"trends"`
	Charts             string           `json:"charts,omitempty"`
}

type loadOutput struct {
	DistrictID     int    `json:"district_id"`
	Name           string `json:"name"`
	Months         int    `json:"months"`
	DatasetVersion string `json:"dataset_version"`
	Departments    int    `json:"departments"`
	Placeholder    bool   `json:"placeholder"`
}

type departmentResult struct {
	Name             string `json:"name"`
	CurrentStaff     int    `json:"current_staff"`
	RecommendedStaff int    `json:"recommended_staff"`
	Gap              int    `json:"gap"`
	RiskLabel        string `json:"risk_label"`
}

type simulationOutput struct {
	DistrictID     int                          `json:"district_id"`
	DistrictName   string                       `json:"district_name"`
	DatasetVersion string                       `json:"dataset_version"`
	Placeholder    bool                         `json:"placeholder"`
	Scenario       workforce.ScenarioParameters `json:"scenario"`
	Departments    []departmentResult           `json:"departments"`
	Verdict        workforce.AggregateVerdict   `json:"verdict"`
	Summary        report.ExecutiveSummary      `json:"summary"`
}

type riskOutput struct {
	Points []workforce.RiskPoint `json:"points"`
	Chart  string                `json:"chart,omitempty"`
}

type workloadOutput struct {
	LegalHoursLimit float64                 `json:"legal_hours_limit"`
	Rows            []workforce.WorkloadRow `json:"rows"`
}

func (s *Server) handleLogin(ctx context.Context, req *sdk.CallToolRequest, _ emptyInput) (*sdk.CallToolResult, sessionOutput, error) {
	if err := s.dash.Sessions().Login(); err != nil {
		return nil, sessionOutput{}, err
	}
	return nil, sessionOutput{Authenticated: true}, nil
}

func (s *Server) handleLogout(ctx context.Context, req *sdk.CallToolRequest, _ emptyInput) (*sdk.CallToolResult, sessionOutput, error) {
	if err := s.dash.Sessions().Logout(); err != nil {
		return nil, sessionOutput{}, err
	}
	return nil, sessionOutput{Authenticated: false}, nil
}

func (s *Server) handleStatus(ctx context.Context, req *sdk.CallToolRequest, _ emptyInput) (*sdk.CallToolResult, sessionOutput, error) {
	return nil, sessionOutput{Authenticated: s.dash.Sessions().IsAuthenticated()}, nil
}

func (s *Server) handleListDistricts(ctx context.Context, req *sdk.CallToolRequest, _ emptyInput) (*sdk.CallToolResult, districtsOutput, error) {
	districts, err := s.dash.Districts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list_districts failed")
		return nil, districtsOutput{}, err
	}

	rows := make([]districtRow, 0, len(districts))
	for _, d := range districts {
		rows = append(rows, districtRow{
			DistrictID: d.DistrictID,
			Name:       d.Name,
			Occupancy:  d.Occupancy,
			Score:      d.Score,
			Status:     kds.ScoreStatus(d.Score),
		})
	}
	return nil, districtsOutput{Districts: rows}, nil
}

func (s *Server) handleSummary(ctx context.Context, req *sdk.CallToolRequest, _ emptyInput) (*sdk.CallToolResult, kds.Summary, error) {
	return nil, s.dash.Summary(ctx), nil
}

func (s *Server) handleTrends(ctx context.Context, req *sdk.CallToolRequest, in trendsInput) (*sdk.CallToolResult, trendsOutput, error) {
	series, err := s.dash.Trends(ctx, in.DistrictID, in.Months, in.Locale)
	if err != nil {
		log.Error().Err(err).Int("district", in.DistrictID).Msg("get_district_trends failed")
		return nil, trendsOutput{}, err
	}

	out := trendsOutput{
		DistrictID:         series.DistrictID,
		Months:             series.Months,
		ProductivityTarget: visuals.ProductivityTarget,
		Trends:             series.Points,
	}
	if s.charts {
		out.Charts = visuals.GenerateTrendChart(series.Points) + "\n\n" + visuals.GenerateProductivityChart(series.Points)
	}
	return nil, out, nil
}

func (s *Server) handleLoadDistrict(ctx context.Context, req *sdk.CallToolRequest, in loadInput) (*sdk.CallToolResult, loadOutput, error) {
	view, err := s.dash.LoadDistrict(ctx, in.DistrictID, in.Months)
	if err != nil {
		log.Error().Err(err).Int("district", in.DistrictID).Msg("load_district failed")
		return nil, loadOutput{}, err
	}
	return nil, loadOutput{
		DistrictID:     view.DistrictID,
		Name:           s.dash.DistrictName(view.DistrictID),
		Months:         view.Months,
		DatasetVersion: view.Dataset.Version,
		Departments:    len(view.Dataset.Departments),
		Placeholder:    view.Dataset.IsEmpty(),
	}, nil
}

func (s *Server) handleSetScenario(ctx context.Context, req *sdk.CallToolRequest, in scenarioInput) (*sdk.CallToolResult, workforce.ScenarioParameters, error) {
	params := workforce.ScenarioParameters{
		OccupancyDeltaPercent:     in.OccupancyDeltaPercent,
		ProductivityTargetPercent: in.ProductivityTargetPercent,
		AvgStaffCost:              in.AvgStaffCost,
	}
	if err := s.dash.SetScenario(params); err != nil {
		return nil, s.dash.Scenario(), err
	}
	return nil, params, nil
}

func (s *Server) handleSimulation(ctx context.Context, req *sdk.CallToolRequest, in simulationInput) (*sdk.CallToolResult, simulationOutput, error) {
	format := strings.ToLower(in.Format)
	if format != "" && format != "json" && format != "markdown" {
		return nil, simulationOutput{}, fmt.Errorf("unsupported format %q: use 'json' or 'markdown'", in.Format)
	}

	snap, err := s.dash.Simulate(ctx, in.DistrictID)
	if err != nil {
		log.Error().Err(err).Int("district", in.DistrictID).Msg("run_simulation failed")
		return nil, simulationOutput{}, err
	}

	name := s.dash.DistrictName(snap.DistrictID)
	out := simulationOutput{
		DistrictID:     snap.DistrictID,
		DistrictName:   name,
		DatasetVersion: snap.DatasetVersion,
		Placeholder:    snap.Placeholder,
		Scenario:       snap.Scenario,
		Departments:    make([]departmentResult, 0, len(snap.Departments)),
		Verdict:        snap.Verdict,
		Summary:        report.Summarize(snap.Verdict),
	}
	for _, d := range snap.Departments {
		out.Departments = append(out.Departments, departmentResult{
			Name:             d.Name,
			CurrentStaff:     d.CurrentStaff,
			RecommendedStaff: d.RecommendedStaff,
			Gap:              d.Gap,
			RiskLabel:        d.RiskLabel,
		})
	}

	if format == "markdown" {
		md := report.RenderSimulationMarkdown(snap, name, s.charts)
		return &sdk.CallToolResult{Content: []sdk.Content{&sdk.TextContent{Text: md}}}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleRiskMatrix(ctx context.Context, req *sdk.CallToolRequest, in districtInput) (*sdk.CallToolResult, riskOutput, error) {
	points, err := s.dash.Risk(ctx, in.DistrictID)
	if err != nil {
		return nil, riskOutput{}, err
	}
	out := riskOutput{Points: points}
	if s.charts {
		out.Chart = visuals.GenerateRiskMatrix(points)
	}
	return nil, out, nil
}

func (s *Server) handleWorkload(ctx context.Context, req *sdk.CallToolRequest, in districtInput) (*sdk.CallToolResult, workloadOutput, error) {
	rows, err := s.dash.Workload(ctx, in.DistrictID)
	if err != nil {
		return nil, workloadOutput{}, err
	}
	return nil, workloadOutput{LegalHoursLimit: workforce.LegalHoursLimit, Rows: rows}, nil
}
