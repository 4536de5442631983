package mcp

import (
	"context"

	"staffplan/internal/dashboard"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes the dashboard as MCP tools.
type Server struct {
	dash    *dashboard.Service
	charts  bool
	version string
}

// NewServer creates a new MCP server. When charts is set, tool results carry
// Mermaid charts next to the data.
func NewServer(dash *dashboard.Service, charts bool, version string) *Server {
	return &Server{dash: dash, charts: charts, version: version}
}

// Build returns an SDK server with every tool registered.
func (s *Server) Build() *sdk.Server {
	srv := sdk.NewServer(&sdk.Implementation{Name: "staffplan", Version: s.version}, nil)
	s.registerTools(srv)
	return srv
}

// Serve runs the MCP session over stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("version", s.version).Msg("MCP Server starting Stdio loop")
	return s.Build().Run(ctx, &sdk.StdioTransport{})
}

// gated rejects the call unless a manager is logged in.
func gated[In, Out any](s *Server, h sdk.ToolHandlerFor[In, Out]) sdk.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *sdk.CallToolRequest, in In) (*sdk.CallToolResult, Out, error) {
		if err := s.dash.Sessions().Require(); err != nil {
			var zero Out
			return nil, zero, err
		}
		return h(ctx, req, in)
	}
}
