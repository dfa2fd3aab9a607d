package events

// Event type constants for kelindar/event.
const (
	TypeButton uint32 = iota + 1
	TypePanelReady
	TypeLaunchResult
	TypeLink
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ButtonEvent represents a decoded button frame from the panel.
type ButtonEvent struct {
	ButtonID  string `json:"button_id" example:"3" doc:"Panel button identifier"`
	Action    string `json:"action" example:"DOWN" doc:"Button action: DOWN, UP, or other"`
	Timestamp string `json:"timestamp" example:"2026-08-23T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ButtonEvent.
func (e ButtonEvent) Type() uint32 { return TypeButton }

// PanelReadyEvent represents the panel's READY announcement.
type PanelReadyEvent struct {
	Detail    string `json:"detail" example:"v2|8-buttons" doc:"Remaining READY frame fields"`
	Timestamp string `json:"timestamp" example:"2026-08-23T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PanelReadyEvent.
func (e PanelReadyEvent) Type() uint32 { return TypePanelReady }

// LaunchResultEvent represents the outcome of a button-triggered launch.
type LaunchResultEvent struct {
	ButtonID  string `json:"button_id" example:"3" doc:"Panel button identifier"`
	Command   string `json:"command,omitempty" example:"notepad.exe" doc:"Launched command, empty when unmapped"`
	Result    string `json:"result" example:"ok" doc:"Launch result: ok, unmapped, or error"`
	Error     string `json:"error,omitempty" doc:"Launch error detail"`
	Timestamp string `json:"timestamp" example:"2026-08-23T10:30:00Z" doc:"Event timestamp"`
}

// Launch result values.
const (
	LaunchOK       = "ok"
	LaunchUnmapped = "unmapped"
	LaunchError    = "error"
)

// Type returns the event type identifier for LaunchResultEvent.
func (e LaunchResultEvent) Type() uint32 { return TypeLaunchResult }

// LinkEvent represents serial link state transitions.
type LinkEvent struct {
	State     string `json:"state" example:"connected" doc:"Link state: connected, disconnected, or reconnected"`
	Port      string `json:"port,omitempty" example:"/dev/ttyUSB0" doc:"Serial port name"`
	Timestamp string `json:"timestamp" example:"2026-08-23T10:30:00Z" doc:"Event timestamp"`
}

// Link state values.
const (
	LinkConnected    = "connected"
	LinkDisconnected = "disconnected"
	LinkReconnected  = "reconnected"
)

// Type returns the event type identifier for LinkEvent.
func (e LinkEvent) Type() uint32 { return TypeLink }

// LogEntryEvent carries a log entry for SSE streaming.
type LogEntryEvent struct {
	Timestamp  string         `json:"timestamp" doc:"Entry timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"driver" doc:"Originating module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
