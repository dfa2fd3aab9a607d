package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/smazurov/panelnode/cmd"
	"github.com/smazurov/panelnode/internal/api"
	"github.com/smazurov/panelnode/internal/config"
	"github.com/smazurov/panelnode/internal/driver"
	"github.com/smazurov/panelnode/internal/events"
	"github.com/smazurov/panelnode/internal/launcher"
	"github.com/smazurov/panelnode/internal/logging"
	"github.com/smazurov/panelnode/internal/metrics"
	"github.com/smazurov/panelnode/internal/ports"
	"github.com/smazurov/panelnode/internal/transport"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Panel settings
	Programs string `help:"Button-to-program mapping file" default:"programs.json" toml:"panel.programs" env:"PANEL_PROGRAMS"`

	// Serial settings
	Port     string `help:"Serial port (autodetected when empty)" short:"p" default:"" toml:"serial.port" env:"SERIAL_PORT"`
	Baud     int    `help:"Serial baud rate" default:"115200" toml:"serial.baud" env:"SERIAL_BAUD"`
	Simulate bool   `help:"Read frames from stdin instead of a serial port" default:"false" toml:"serial.simulate" env:"SERIAL_SIMULATE"`

	// LED feedback settings
	SuccessFlashMs int `help:"Success blink hold time in milliseconds" default:"1200" toml:"leds.success_flash_ms" env:"LEDS_SUCCESS_FLASH_MS"`
	FailureFlashMs int `help:"Failure blink hold time in milliseconds" default:"2000" toml:"leds.failure_flash_ms" env:"LEDS_FAILURE_FLASH_MS"`

	// API settings
	APIAddr string `help:"API listen address" default:":8093" toml:"api.addr" env:"API_ADDR"`

	// Logging settings
	LoggingLevel     string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat    string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingTransport string `help:"Transport logging level" default:"info" toml:"logging.transport" env:"LOGGING_TRANSPORT"`
	LoggingDriver    string `help:"Driver logging level" default:"info" toml:"logging.driver" env:"LOGGING_DRIVER"`
	LoggingAPI       string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"transport": opts.LoggingTransport,
				"driver":    opts.LoggingDriver,
				"api":       opts.LoggingAPI,
			},
		})

		logger := logging.GetLogger("main")

		// A missing or malformed registry is fatal: a panel with no
		// mappings has nothing to do.
		programs, err := config.LoadPrograms(opts.Programs)
		if err != nil {
			logger.Error("Failed to load program registry", "error", err)
			os.Exit(1)
		}
		logger.Info("Program registry loaded", "path", opts.Programs, "buttons", len(programs))

		eventBus := events.New()

		// Forward log entries onto the bus for SSE clients.
		logging.SetLogCallback(func(entry logging.LogEntry) {
			eventBus.Publish(events.LogEntryEvent{
				Timestamp:  entry.Timestamp.Format(time.RFC3339),
				Level:      entry.Level,
				Module:     entry.Module,
				Message:    entry.Message,
				Attributes: entry.Attributes,
			})
		})

		collector := metrics.NewCollector(eventBus)

		var tr transport.Transport
		if opts.Simulate {
			logger.Info("Simulation mode, reading frames from stdin")
			tr = transport.NewSim(logging.GetLogger("transport"))
		} else {
			port, detectErr := ports.Detect(opts.Port, logging.GetLogger("transport"))
			if detectErr != nil {
				logger.Error("No usable serial port", "error", detectErr)
				os.Exit(1)
			}
			tr = transport.NewSerial(transport.SerialConfig{
				Port: port,
				Baud: opts.Baud,
			}, logging.GetLogger("transport"), eventBus)
		}

		drv := driver.New(tr, launcher.New(logging.GetLogger("driver")), eventBus, programs, driver.Config{
			SuccessFlash: time.Duration(opts.SuccessFlashMs) * time.Millisecond,
			FailureFlash: time.Duration(opts.FailureFlashMs) * time.Millisecond,
		}, logging.GetLogger("driver"))

		// Hot reload of the registry: edits to the file swap the mapping
		// without restarting the daemon.
		watcher := config.NewConfigWatcher(opts.Programs, config.LoadPrograms, logger)
		watcher.OnReload(drv.SetPrograms)

		server := api.NewServer(&api.Options{
			EventBus:          eventBus,
			Registry:          drv,
			Panel:             tr,
			PrometheusHandler: metrics.HTTPHandler(),
		})

		hooks.OnStart(func() {
			collector.Start()

			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Program registry watcher failed to start", "error", watchErr)
			}

			go func() {
				logger.Info("Starting HTTP server", "addr", opts.APIAddr)
				if startErr := server.Start(opts.APIAddr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
					logger.Error("Failed to start HTTP server", "error", startErr)
					os.Exit(1)
				}
			}()

			// The transport is released however the loop exits; Close is
			// idempotent so the shutdown hook closing it again is fine.
			defer func() {
				_ = tr.Close()
			}()

			// The read loop is the daemon's main loop; it exits when the
			// transport is closed during shutdown or the input ends.
			for {
				line, readErr := tr.ReadLine()
				if errors.Is(readErr, io.EOF) {
					logger.Info("Transport closed, read loop exiting")
					return
				}
				if readErr != nil {
					logger.Warn("Read error", "error", readErr)
					continue
				}
				if line == "" {
					continue
				}
				drv.HandleLine(line)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Warn("Error stopping registry watcher", "error", stopErr)
			}
			if stopErr := server.Stop(); stopErr != nil {
				logger.Warn("Error stopping HTTP server", "error", stopErr)
			}
			// Let pending LED-off commands drain before the link drops.
			drv.Drain()
			if closeErr := tr.Close(); closeErr != nil {
				logger.Warn("Error closing transport", "error", closeErr)
			}
			collector.Stop()
		})
	})

	cli.Root().Use = "panelnode"
	cli.Root().AddCommand(cmd.CreateDetectCmd())
	cli.Root().AddCommand(cmd.CreateSendCmd())
	cli.Root().AddCommand(cmd.CreateUpdateCmd())

	cli.Run()
}
