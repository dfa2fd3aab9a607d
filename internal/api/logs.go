package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/panelnode/internal/logging"
)

// LogLine is one entry from the log ring buffer.
type LogLine struct {
	Timestamp  string         `json:"timestamp" doc:"Entry timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"driver" doc:"Originating module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

// LogsResponse returns recent log history.
type LogsResponse struct {
	Body struct {
		Entries []LogLine `json:"entries" doc:"Recent log entries, oldest first"`
	}
}

// registerLogRoutes exposes the in-memory log history.
func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-logs",
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Recent Logs",
		Description: "Get recent log entries from the in-memory ring buffer",
		Tags:        []string{"system"},
	}, func(ctx context.Context, input *struct{}) (*LogsResponse, error) {
		resp := &LogsResponse{}
		buffer := logging.GetBuffer()
		if buffer == nil {
			resp.Body.Entries = []LogLine{}
			return resp, nil
		}

		entries := buffer.Snapshot()
		resp.Body.Entries = make([]LogLine, 0, len(entries))
		for _, e := range entries {
			resp.Body.Entries = append(resp.Body.Entries, LogLine{
				Timestamp:  e.Timestamp.Format(time.RFC3339),
				Level:      e.Level,
				Module:     e.Module,
				Message:    e.Message,
				Attributes: e.Attributes,
			})
		}
		return resp, nil
	})
}
