package mcp

import (
	"fmt"

	"staffplan/internal/workforce"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type emptyInput struct{}

type districtInput struct {
	DistrictID int `json:"district_id,omitempty" jsonschema:"District ID. Defaults to the loaded district, then DEFAULT_DISTRICT_ID, then the first district."`
}

type trendsInput struct {
	DistrictID int    `json:"district_id,omitempty" jsonschema:"District ID. Defaults to the loaded district."`
	Months     int    `json:"months,omitempty" jsonschema:"Horizon in months: 6, 12 or 18. Defaults to the current horizon."`
	Locale     string `json:"locale,omitempty" jsonschema:"Use 'tr' for Turkish month labels."`
}

type loadInput struct {
	DistrictID int `json:"district_id,omitempty" jsonschema:"District ID to load. Defaults to DEFAULT_DISTRICT_ID, then the first district."`
	Months     int `json:"months,omitempty" jsonschema:"Horizon in months: 6, 12 or 18."`
}

type scenarioInput struct {
	OccupancyDeltaPercent     int `json:"occupancy_delta_percent" jsonschema:"Expected occupancy change in percent, -20 to 30 in steps of 5."`
	ProductivityTargetPercent int `json:"productivity_target_percent" jsonschema:"Productivity target in percent, 80 to 120 in steps of 5."`
	AvgStaffCost              int `json:"avg_staff_cost" jsonschema:"Average monthly cost of one staff member in lira, 20000 to 60000 in steps of 1000."`
}

type simulationInput struct {
	DistrictID int    `json:"district_id,omitempty" jsonschema:"District ID. Defaults to the loaded district."`
	Format     string `json:"format,omitempty" jsonschema:"'json' (default) or 'markdown' for a manager-ready report."`
}

func ptr(v float64) *float64 { return &v }

// inputSchema derives the schema of T and lets the caller tighten properties.
func inputSchema[T any](tighten func(props map[string]*jsonschema.Schema)) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("invalid tool input type %T: %v", *new(T), err))
	}
	if tighten != nil {
		tighten(schema.Properties)
	}
	return schema
}

func boundTo(s *jsonschema.Schema, b workforce.Bound) {
	s.Minimum = ptr(float64(b.Min))
	s.Maximum = ptr(float64(b.Max))
	s.MultipleOf = ptr(float64(b.Step))
}

func districtIDMin(props map[string]*jsonschema.Schema) {
	if p, ok := props["district_id"]; ok {
		p.Minimum = ptr(1)
	}
}

func monthsRange(props map[string]*jsonschema.Schema) {
	// 6, 12 and 18 are exactly the multiples of 6 in [6, 18].
	if p, ok := props["months"]; ok {
		p.Minimum = ptr(6)
		p.Maximum = ptr(18)
		p.MultipleOf = ptr(6)
	}
}

func (s *Server) registerTools(srv *sdk.Server) {
	sdk.AddTool(srv, &sdk.Tool{
		Name:        "session_login",
		Description: "Log the manager in. All dashboard tools require a logged-in session. There is no credential check.",
		InputSchema: inputSchema[emptyInput](nil),
	}, s.handleLogin)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "session_logout",
		Description: "Log the manager out. Logging out when not logged in is not an error.",
		InputSchema: inputSchema[emptyInput](nil),
	}, s.handleLogout)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "session_status",
		Description: "Report whether a manager is logged in.",
		InputSchema: inputSchema[emptyInput](nil),
	}, s.handleStatus)

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "list_districts",
		Description: "List hotel branches (districts) with occupancy, performance score and status tier (Excellent/Good/Average/Low). Guidance: Call 'load_district' next to select a branch for scenario planning.",
		InputSchema: inputSchema[emptyInput](nil),
	}, gated(s, s.handleListDistricts))

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "get_summary",
		Description: "Get group-wide totals: revenue, average occupancy, rooms and staff. Values are pre-formatted for display.",
		InputSchema: inputSchema[emptyInput](nil),
	}, gated(s, s.handleSummary))

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "get_district_trends",
		Description: "Get the monthly revenue, occupancy and revenue-per-staff trend of a district over 6, 12 or 18 months. Revenue per staff is compared against a fixed target of 12000.",
		InputSchema: inputSchema[trendsInput](func(props map[string]*jsonschema.Schema) {
			districtIDMin(props)
			monthsRange(props)
		}),
	}, gated(s, s.handleTrends))

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "load_district",
		Description: "Load a district's department dataset as the input of scenario planning. The current scenario is kept. MUST be called before interpreting simulation results for a new branch.",
		InputSchema: inputSchema[loadInput](func(props map[string]*jsonschema.Schema) {
			districtIDMin(props)
			monthsRange(props)
		}),
	}, gated(s, s.handleLoadDistrict))

	sdk.AddTool(srv, &sdk.Tool{
		Name: "set_scenario",
		Description: "Set the what-if scenario: expected occupancy change, productivity target and average staff cost. " +
			"Out-of-range or off-step values are rejected, never clamped. Guidance: Call 'run_simulation' next.",
		InputSchema: inputSchema[scenarioInput](func(props map[string]*jsonschema.Schema) {
			boundTo(props["occupancy_delta_percent"], workforce.OccupancyDeltaBound)
			boundTo(props["productivity_target_percent"], workforce.ProductivityTargetBound)
			boundTo(props["avg_staff_cost"], workforce.AvgStaffCostBound)
		}),
	}, gated(s, s.handleSetScenario))

	sdk.AddTool(srv, &sdk.Tool{
		Name: "run_simulation",
		Description: "Simulate the current scenario for a district: recommended headcount and gap per department, and the organization-wide hiring or reduction verdict with its estimated monthly cost or savings.\n\n" +
			"STRICT GUARDRAIL: Report the verdict exactly as returned. A net gap of zero is reported as hiring zero staff. DO NOT round, re-derive or extrapolate headcounts yourself.",
		InputSchema: inputSchema[simulationInput](districtIDMin),
	}, gated(s, s.handleSimulation))

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "get_risk_matrix",
		Description: "Place each department of a district on the overtime (x) / turnover (y) risk matrix, sized by weight (z) and colored danger/warning/success by its risk label.",
		InputSchema: inputSchema[districtInput](districtIDMin),
	}, gated(s, s.handleRiskMatrix))

	sdk.AddTool(srv, &sdk.Tool{
		Name:        "get_workload",
		Description: "List normal and overtime hours per department of a district against the 180 hour monthly legal limit.",
		InputSchema: inputSchema[districtInput](districtIDMin),
	}, gated(s, s.handleWorkload))
}
