package mcp

import (
	"context"
	"strings"
	"testing"

	"staffplan/internal/dashboard"
	"staffplan/internal/kds"
	"staffplan/internal/session"
	"staffplan/internal/workforce"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type mockKDSClient struct {
	kds.Client
}

func (m *mockKDSClient) Districts(ctx context.Context) ([]kds.District, error) {
	return []kds.District{
		{DistrictID: 5, Name: "Çeşme", Occupancy: 81.6, Score: 4.8},
		{DistrictID: 6, Name: "Alaçatı", Occupancy: 70, Score: 4.1},
	}, nil
}

func (m *mockKDSClient) Summary(ctx context.Context) (kds.Summary, error) {
	return kds.Summary{TotalRevenue: "₺4.1M", AvgOccupancy: "%76", TotalRooms: "820", TotalStaff: "312"}, nil
}

func (m *mockKDSClient) Trends(ctx context.Context, districtID, months int) ([]kds.TrendPoint, error) {
	out := make([]kds.TrendPoint, months)
	for i := range out {
		out[i] = kds.TrendPoint{Period: "Feb 2025", Revenue: 1000, Occupancy: 70, Productivity: 11500}
	}
	return out, nil
}

func (m *mockKDSClient) Departments(ctx context.Context, districtID int) ([]workforce.Department, error) {
	return []workforce.Department{
		{Name: "A", CurrentStaff: 10, BaselineRecommendation: 10, NormalHours: 160, OvertimeHours: 5, TurnoverRate: 2, RiskLabel: "LOW"},
		{Name: "B", CurrentStaff: 5, BaselineRecommendation: 8, NormalHours: 165, OvertimeHours: 40, TurnoverRate: 15, RiskLabel: "CRITICAL"},
	}, nil
}

func newTestServer(t *testing.T, charts bool) *Server {
	t.Helper()
	dash := dashboard.NewService(&mockKDSClient{}, session.NewStore(t.TempDir()), dashboard.Options{DefaultDistrictID: 5})
	return NewServer(dash, charts, "test")
}

func login(t *testing.T, s *Server) {
	t.Helper()
	if _, out, err := s.handleLogin(context.Background(), nil, emptyInput{}); err != nil || !out.Authenticated {
		t.Fatalf("login failed: %v", err)
	}
}

func TestBuild_RegistersTools(t *testing.T) {
	s := newTestServer(t, false)
	if s.Build() == nil {
		t.Fatal("expected a server")
	}
}

func TestGatedTools_RequireLogin(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()

	h := gated(s, s.handleListDistricts)
	if _, _, err := h(ctx, nil, emptyInput{}); err != session.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	login(t, s)
	_, out, err := h(ctx, nil, emptyInput{})
	if err != nil {
		t.Fatalf("unexpected error after login: %v", err)
	}
	if len(out.Districts) != 2 || out.Districts[0].Status != "Excellent" || out.Districts[1].Status != "Average" {
		t.Errorf("unexpected districts: %+v", out.Districts)
	}

	if _, _, err := s.handleLogout(ctx, nil, emptyInput{}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, _, err := h(ctx, nil, emptyInput{}); err != session.ErrUnauthenticated {
		t.Errorf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestSessionStatus(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()

	_, out, _ := s.handleStatus(ctx, nil, emptyInput{})
	if out.Authenticated {
		t.Error("expected logged out initially")
	}
	login(t, s)
	_, out, _ = s.handleStatus(ctx, nil, emptyInput{})
	if !out.Authenticated {
		t.Error("expected logged in")
	}
}

func TestSetScenarioThenSimulate(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	login(t, s)

	_, params, err := s.handleSetScenario(ctx, nil, scenarioInput{OccupancyDeltaPercent: 10, ProductivityTargetPercent: 90, AvgStaffCost: 35000})
	if err != nil {
		t.Fatalf("set_scenario failed: %v", err)
	}
	if params.OccupancyDeltaPercent != 10 {
		t.Errorf("unexpected params %+v", params)
	}

	res, out, err := s.handleSimulation(ctx, nil, simulationInput{})
	if err != nil {
		t.Fatalf("run_simulation failed: %v", err)
	}
	if res != nil {
		t.Error("json format should leave content to the SDK")
	}
	if out.DistrictID != 5 || out.DistrictName != "Çeşme" {
		t.Errorf("unexpected district %d %q", out.DistrictID, out.DistrictName)
	}
	if out.Verdict.TotalGap != 8 || !out.Verdict.IsHiring || out.Verdict.EstimatedMonthlyCost != 280000 {
		t.Errorf("unexpected verdict %+v", out.Verdict)
	}
	if out.Departments[0].RecommendedStaff != 13 || out.Departments[1].RecommendedStaff != 10 {
		t.Errorf("unexpected departments %+v", out.Departments)
	}
	if out.Summary.Amount != "₺280.000" {
		t.Errorf("unexpected amount %q", out.Summary.Amount)
	}
}

func TestSetScenario_RejectsOffStep(t *testing.T) {
	s := newTestServer(t, false)
	login(t, s)

	_, current, err := s.handleSetScenario(context.Background(), nil, scenarioInput{OccupancyDeltaPercent: 7, ProductivityTargetPercent: 100, AvgStaffCost: 35000})
	if err == nil {
		t.Fatal("expected error for off-step occupancy")
	}
	if current != workforce.DefaultScenario() {
		t.Errorf("scenario should be unchanged, got %+v", current)
	}
}

func TestSimulation_Markdown(t *testing.T) {
	s := newTestServer(t, true)
	login(t, s)

	res, _, err := s.handleSimulation(context.Background(), nil, simulationInput{DistrictID: 5, Format: "markdown"})
	if err != nil {
		t.Fatalf("run_simulation failed: %v", err)
	}
	if res == nil || len(res.Content) != 1 {
		t.Fatal("expected a single markdown content block")
	}
	text, ok := res.Content[0].(*sdk.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	if !strings.Contains(text.Text, "## Çeşme: Staffing Scenario") || !strings.Contains(text.Text, "```mermaid") {
		t.Errorf("unexpected markdown: %s", text.Text)
	}
}

func TestSimulation_UnknownFormat(t *testing.T) {
	s := newTestServer(t, false)
	login(t, s)

	if _, _, err := s.handleSimulation(context.Background(), nil, simulationInput{Format: "pdf"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTrends_WithCharts(t *testing.T) {
	s := newTestServer(t, true)
	login(t, s)

	_, out, err := s.handleTrends(context.Background(), nil, trendsInput{Months: 12, Locale: "tr"})
	if err != nil {
		t.Fatalf("get_district_trends failed: %v", err)
	}
	if out.Months != 12 || len(out.Trends) != 12 {
		t.Errorf("expected 12 periods, got %d", len(out.Trends))
	}
	if out.Trends[0].Period != "Şub 2025" {
		t.Errorf("expected localised label, got %q", out.Trends[0].Period)
	}
	if out.ProductivityTarget != 12000 || !strings.Contains(out.Charts, "Revenue per Staff") {
		t.Errorf("missing productivity chart: %+v", out)
	}
}

func TestRiskAndWorkload(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	login(t, s)

	_, load, err := s.handleLoadDistrict(ctx, nil, loadInput{DistrictID: 6})
	if err != nil {
		t.Fatalf("load_district failed: %v", err)
	}
	if load.Name != "District 6" && load.Name != "Alaçatı" {
		t.Errorf("unexpected name %q", load.Name)
	}
	if load.Departments != 2 || load.DatasetVersion == "" {
		t.Errorf("unexpected load output %+v", load)
	}

	_, risk, err := s.handleRiskMatrix(ctx, nil, districtInput{})
	if err != nil {
		t.Fatalf("get_risk_matrix failed: %v", err)
	}
	if risk.Points[1].ColorTier != workforce.TierDanger || risk.Chart != "" {
		t.Errorf("unexpected risk output %+v", risk)
	}

	_, wl, err := s.handleWorkload(ctx, nil, districtInput{})
	if err != nil {
		t.Fatalf("get_workload failed: %v", err)
	}
	if wl.LegalHoursLimit != 180 || !wl.Rows[1].OverLimit || wl.Rows[0].OverLimit {
		t.Errorf("unexpected workload %+v", wl)
	}
}
