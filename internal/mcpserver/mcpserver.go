// Package mcpserver exposes bigo's estimator as MCP tools so coding
// agents can ask for complexity estimates without shelling out.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the estimation tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all bigo tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bigo",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds the estimation tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "estimate_complexity",
		Description: "Estimate worst-case Big-O time complexity for every " +
			"function in the given C/C++ files or directories. Heuristic " +
			"static analysis over syntax trees: loop nesting, known library " +
			"call costs, recursion shape, and structural fingerprints. " +
			"Results marked (est) contain unresolved calls and may be " +
			"underestimates.",
	}, handleEstimateComplexity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "estimate_function",
		Description: "Estimate worst-case Big-O time complexity for the " +
			"functions in a C/C++ source snippet passed inline. Useful for " +
			"checking code before it is written to disk.",
	}, handleEstimateFunction)
}
