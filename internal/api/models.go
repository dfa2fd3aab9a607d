package api

// HealthData describes the health check payload.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Message string `json:"message" example:"API is healthy" doc:"Status detail"`
}

// HealthResponse wraps the health check payload.
type HealthResponse struct {
	Body HealthData
}

// VersionData describes the build information payload.
type VersionData struct {
	Version   string `json:"version" example:"1.0.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc123" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2026-08-23" doc:"Build date"`
	GoVersion string `json:"go_version" example:"go1.24" doc:"Go version used to build"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Target platform"`
}

// VersionResponse wraps the build information payload.
type VersionResponse struct {
	Body VersionData
}

// RegistryEntry is one button-to-program mapping.
type RegistryEntry struct {
	Button  string   `json:"button" example:"3" doc:"Panel button identifier"`
	Command []string `json:"command" example:"[\"notepad.exe\"]" doc:"Command tokens"`
}

// RegistryResponse lists the current button registry.
type RegistryResponse struct {
	Body struct {
		Buttons []RegistryEntry `json:"buttons" doc:"Mapped buttons in sorted order"`
	}
}

// LEDRequest controls a panel LED directly.
type LEDRequest struct {
	Body struct {
		LED    string `json:"led" example:"3" doc:"Panel LED identifier"`
		Mode   string `json:"mode" example:"BLINK" doc:"LED mode: ON, OFF, or BLINK"`
		Period int    `json:"period,omitempty" example:"180" doc:"Blink period in milliseconds, BLINK only"`
	}
}
