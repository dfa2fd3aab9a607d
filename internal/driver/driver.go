// Package driver decodes panel frames and turns button presses into program
// launches with LED feedback. It owns the button registry and is the only
// writer of LED commands during normal operation.
package driver

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smazurov/panelnode/internal/config"
	"github.com/smazurov/panelnode/internal/events"
	"github.com/smazurov/panelnode/internal/launcher"
	"github.com/smazurov/panelnode/internal/protocol"
	"github.com/smazurov/panelnode/internal/transport"
)

// Config holds the LED feedback timings. Success feedback is a fast blink
// held briefly; failure feedback is a slower blink held longer so it reads
// differently at a glance.
type Config struct {
	SuccessFlash       time.Duration // how long the success blink stays active
	FailureFlash       time.Duration // how long the failure blink stays active
	SuccessBlinkPeriod int           // blink period in ms for success
	FailureBlinkPeriod int           // blink period in ms for failure
}

func (c Config) withDefaults() Config {
	if c.SuccessFlash <= 0 {
		c.SuccessFlash = 1200 * time.Millisecond
	}
	if c.FailureFlash <= 0 {
		c.FailureFlash = 2 * time.Second
	}
	if c.SuccessBlinkPeriod <= 0 {
		c.SuccessBlinkPeriod = 80
	}
	if c.FailureBlinkPeriod <= 0 {
		c.FailureBlinkPeriod = 180
	}
	return c
}

// Driver dispatches incoming frames and drives LED feedback.
type Driver struct {
	cfg     Config
	tr      transport.Transport
	spawner launcher.Spawner
	bus     *events.Bus
	logger  *slog.Logger

	mu       sync.RWMutex
	programs config.Programs

	// pending counts in-flight LED-off timers so tests and shutdown can
	// wait for them instead of sleeping.
	pending sync.WaitGroup
}

// New creates a driver. The bus may be nil when nothing consumes events.
func New(tr transport.Transport, spawner launcher.Spawner, bus *events.Bus, programs config.Programs, cfg Config, logger *slog.Logger) *Driver {
	return &Driver{
		cfg:      cfg.withDefaults(),
		tr:       tr,
		spawner:  spawner,
		bus:      bus,
		logger:   logger,
		programs: programs,
	}
}

// SetPrograms swaps the button registry. Called on config hot reload; frames
// already being handled keep the snapshot they looked up.
func (d *Driver) SetPrograms(programs config.Programs) {
	d.mu.Lock()
	d.programs = programs
	d.mu.Unlock()
	d.logger.Info("Program registry updated", "buttons", len(programs))
}

// Programs returns the current registry snapshot.
func (d *Driver) Programs() config.Programs {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snapshot := make(config.Programs, len(d.programs))
	for id, tokens := range d.programs {
		snapshot[id] = tokens
	}
	return snapshot
}

// HandleLine processes one frame from the panel. Malformed or unknown frames
// are logged and dropped; the handler never returns an error because a bad
// frame must not disturb the read loop.
func (d *Driver) HandleLine(line string) {
	fields := protocol.Split(line)
	if fields == nil {
		return
	}

	switch protocol.Topic(fields) {
	case protocol.TopicButton:
		d.handleButton(fields)
	case protocol.TopicReady:
		d.handleReady(fields)
	default:
		d.logger.Debug("Ignoring frame", "line", line)
	}
}

func (d *Driver) handleButton(fields []string) {
	if len(fields) < 3 {
		d.logger.Debug("Dropping malformed button frame", "fields", len(fields))
		return
	}

	buttonID := strings.TrimSpace(fields[1])
	action := strings.ToUpper(strings.TrimSpace(fields[2]))
	if buttonID == "" {
		d.logger.Debug("Dropping button frame with empty id")
		return
	}

	d.publish(events.ButtonEvent{
		ButtonID:  buttonID,
		Action:    action,
		Timestamp: timestamp(),
	})

	if action != protocol.ActionDown {
		return
	}
	d.launch(buttonID)
}

func (d *Driver) handleReady(fields []string) {
	detail := protocol.Join(fields[1:]...)
	d.logger.Info("Panel ready", "detail", detail)
	d.publish(events.PanelReadyEvent{
		Detail:    detail,
		Timestamp: timestamp(),
	})
}

// launch resolves the button to its program and spawns it. Unmapped buttons
// and start failures both get failure feedback so the operator sees the
// press was received but went nowhere.
func (d *Driver) launch(buttonID string) {
	d.mu.RLock()
	tokens, ok := d.programs[buttonID]
	d.mu.RUnlock()

	if !ok {
		d.logger.Warn("No program mapped for button", "button", buttonID)
		d.Flash(buttonID, false)
		d.publish(events.LaunchResultEvent{
			ButtonID:  buttonID,
			Result:    events.LaunchUnmapped,
			Timestamp: timestamp(),
		})
		return
	}

	if err := d.spawner.Spawn(tokens); err != nil {
		d.logger.Warn("Launch failed", "button", buttonID, "command", tokens[0], "error", err)
		d.Flash(buttonID, false)
		d.publish(events.LaunchResultEvent{
			ButtonID:  buttonID,
			Command:   tokens[0],
			Result:    events.LaunchError,
			Error:     err.Error(),
			Timestamp: timestamp(),
		})
		return
	}

	d.logger.Info("Launched program", "button", buttonID, "command", tokens[0])
	d.Flash(buttonID, true)
	d.publish(events.LaunchResultEvent{
		ButtonID:  buttonID,
		Command:   tokens[0],
		Result:    events.LaunchOK,
		Timestamp: timestamp(),
	})
}

// Flash starts LED feedback on the button's LED: a blink command now and an
// off command after the flash duration. The off is sent from a goroutine and
// is not cancelled by a newer flash on the same LED; with rapid presses the
// later off simply wins.
func (d *Driver) Flash(ledID string, success bool) {
	period := d.cfg.FailureBlinkPeriod
	hold := d.cfg.FailureFlash
	if success {
		period = d.cfg.SuccessBlinkPeriod
		hold = d.cfg.SuccessFlash
	}

	if err := d.tr.SendLine(protocol.LEDCommand(ledID, protocol.ModeBlink, period)); err != nil {
		// Feedback is best-effort; the link may be mid-reconnect.
		d.logger.Debug("LED blink command failed", "led", ledID, "error", err)
	}

	d.pending.Add(1)
	go func() {
		defer d.pending.Done()
		time.Sleep(hold)
		if err := d.tr.SendLine(protocol.LEDCommand(ledID, protocol.ModeOff, -1)); err != nil {
			d.logger.Debug("LED off command failed", "led", ledID, "error", err)
		}
	}()
}

// Drain blocks until all pending LED-off timers have fired. Used on
// shutdown so the panel is not left blinking.
func (d *Driver) Drain() {
	d.pending.Wait()
}

func (d *Driver) publish(ev events.Event) {
	if d.bus != nil {
		d.bus.Publish(ev)
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
