package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/groomroom/groomroom/internal/adapters/outbound/config"
	"github.com/groomroom/groomroom/internal/application"
	"github.com/groomroom/groomroom/internal/domain"
)

// Services bundles what the MCP handlers call into.
type Services struct {
	Dir       string
	Groom     *application.GroomService
	TestGenie *application.TestGenieService
	Roast     *application.RoastService
}

// NewServices wires the services against dir. A nil loader reads
// .groomroom.yaml from dir; enricher may be nil.
func NewServices(dir string, loader domain.ConfigLoader, enricher domain.Enricher) Services {
	var cfg domain.ConfigLoader = config.New()
	if loader != nil {
		cfg = loader
	}
	return Services{
		Dir:       dir,
		Groom:     application.NewGroomService(cfg, enricher),
		TestGenie: application.NewTestGenieService(cfg),
		Roast:     application.NewRoastService(cfg, enricher),
	}
}

// NewGroomRoomMCPServer creates a new MCP server with all GroomRoom tools and
// resources registered.
func NewGroomRoomMCPServer(svc Services, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"groomroom",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}
