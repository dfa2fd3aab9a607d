// Package api exposes the panel driver's HTTP surface: health, version,
// registry inspection, direct LED control, and an SSE event stream.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/smazurov/panelnode/internal/config"
	"github.com/smazurov/panelnode/internal/events"
	"github.com/smazurov/panelnode/internal/logging"
	"github.com/smazurov/panelnode/internal/protocol"
	"github.com/smazurov/panelnode/internal/version"
)

// RegistryProvider exposes the current button registry snapshot.
type RegistryProvider interface {
	Programs() config.Programs
}

// LEDSender writes raw frames to the panel. Satisfied by the transport.
type LEDSender interface {
	SendLine(line string) error
}

// Options configures the API server.
type Options struct {
	EventBus          *events.Bus
	Registry          RegistryProvider
	Panel             LEDSender
	PrometheusHandler http.Handler // Optional Prometheus metrics handler
}

// Server is the Huma v2 API server.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	logger     *slog.Logger
}

// NewServer creates the API server with Huma v2 on Go 1.22+ native routing.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	cfg := huma.DefaultConfig("PanelNode API", version.Version)
	cfg.Info.Description = "Button panel to program launch bridge"
	// Empty servers list makes OpenAPI use relative paths, working with any host
	cfg.Servers = []*huma.Server{}

	server := &Server{
		api:     humago.New(mux, cfg),
		mux:     mux,
		options: opts,
		logger:  logging.GetLogger("api"),
	}

	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()
	return server
}

// GetMux returns the underlying HTTP ServeMux for additional setup.
func (s *Server) GetMux() *http.ServeMux {
	return s.mux
}

// Start starts the HTTP server on the specified address.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", "addr", addr)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop shuts down the server without waiting for open connections; SSE
// streams would otherwise hold shutdown forever.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")
	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
	}, func(ctx context.Context, input *struct{}) (*HealthResponse, error) {
		return &HealthResponse{
			Body: HealthData{
				Status:  "ok",
				Message: "API is healthy",
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
	}, func(ctx context.Context, input *struct{}) (*VersionResponse, error) {
		info := version.Get()
		return &VersionResponse{
			Body: VersionData{
				Version:   info.Version,
				GitCommit: info.GitCommit,
				BuildDate: info.BuildDate,
				GoVersion: info.GoVersion,
				Platform:  info.Platform,
			},
		}, nil
	})

	s.registerRegistryRoutes()
	s.registerLEDRoutes()
	s.registerLogRoutes()
	s.registerSSERoutes()
}

// registerRegistryRoutes exposes the button registry, read-only. Edits go
// through the config file; the watcher picks them up.
func (s *Server) registerRegistryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-registry",
		Method:      http.MethodGet,
		Path:        "/api/registry",
		Summary:     "Button Registry",
		Description: "Get the current button-to-program mapping",
		Tags:        []string{"registry"},
	}, func(ctx context.Context, input *struct{}) (*RegistryResponse, error) {
		programs := s.options.Registry.Programs()

		resp := &RegistryResponse{}
		resp.Body.Buttons = make([]RegistryEntry, 0, len(programs))
		for _, id := range programs.Buttons() {
			resp.Body.Buttons = append(resp.Body.Buttons, RegistryEntry{
				Button:  id,
				Command: programs[id],
			})
		}
		return resp, nil
	})
}

// registerLEDRoutes registers direct LED control for bench testing the
// panel without pressing anything.
func (s *Server) registerLEDRoutes() {
	if s.options.Panel == nil {
		s.logger.Debug("Panel transport not available, skipping LED routes")
		return
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "control-led",
		Method:      http.MethodPost,
		Path:        "/api/leds",
		Summary:     "Control LED",
		Description: "Send a raw LED command to the panel",
		Tags:        []string{"leds"},
		Errors:      []int{400, 500},
	}, func(ctx context.Context, input *LEDRequest) (*struct{}, error) {
		mode := protocol.LEDMode(strings.ToUpper(input.Body.Mode))
		switch mode {
		case protocol.ModeOn, protocol.ModeOff, protocol.ModeBlink:
		default:
			return nil, huma.Error400BadRequest("Unknown LED mode: " + input.Body.Mode)
		}

		arg := -1
		if mode == protocol.ModeBlink && input.Body.Period > 0 {
			arg = input.Body.Period
		}

		if err := s.options.Panel.SendLine(protocol.LEDCommand(input.Body.LED, mode, arg)); err != nil {
			return nil, huma.Error500InternalServerError("Failed to send LED command", err)
		}
		return &struct{}{}, nil
	})
}
