// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// A ring buffer of recent entries backs the status API's log stream.
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"transport": "debug",  // Per-module overrides
//			"api":       "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("driver")
//	logger.Info("Panel ready", "port", "/dev/ttyUSB0")
//	logger.Debug("Frame received", "line", line)
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t panelnode              # All panelnode logs
//	journalctl -t panelnode -f           # Follow live
//	journalctl -t panelnode MODULE=transport
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration ("level" and "format" are global, any other
// key under [logging] names a module):
//
//	[logging]
//	level = "info"
//	format = "text"
//	transport = "debug"
//	driver = "info"
//	api = "warn"
package logging
