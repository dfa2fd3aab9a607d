package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/panelnode/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of button presses, launch results, link state, and logs",
		Tags:        []string{"events"},
	}, map[string]any{
		"button":        events.ButtonEvent{},
		"panel-ready":   events.PanelReadyEvent{},
		"launch-result": events.LaunchResultEvent{},
		"link":          events.LinkEvent{},
		"log":           events.LogEntryEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Per-connection channel; slow consumers drop events instead of
		// blocking the dispatcher.
		eventCh := make(chan any, 32)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.ButtonEvent](s.options.EventBus, eventCh),
			events.SubscribeToChannel[events.PanelReadyEvent](s.options.EventBus, eventCh),
			events.SubscribeToChannel[events.LaunchResultEvent](s.options.EventBus, eventCh),
			events.SubscribeToChannel[events.LinkEvent](s.options.EventBus, eventCh),
			events.SubscribeToChannel[events.LogEntryEvent](s.options.EventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
