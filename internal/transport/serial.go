package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/smazurov/panelnode/internal/events"
	"github.com/smazurov/panelnode/internal/metrics"
	"github.com/smazurov/panelnode/internal/protocol"
)

// Defaults match the panel firmware's expectations: the board resets when
// the port opens, so writes before the settle delay are lost.
const (
	defaultRetryDelay  = 1500 * time.Millisecond
	defaultSettleDelay = 2 * time.Second
	defaultReadTimeout = 200 * time.Millisecond
	readChunkSize      = 256
)

// SerialConfig configures the hardware transport.
type SerialConfig struct {
	Port        string
	Baud        int
	RetryDelay  time.Duration // constant delay between open attempts
	SettleDelay time.Duration // wait after open for the device reset
	ReadTimeout time.Duration // bounds a single ReadLine call
}

func (c SerialConfig) withDefaults() SerialConfig {
	if c.RetryDelay == 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = defaultSettleDelay
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	return c
}

// Serial is the hardware Transport. All writes are serialized by a single
// mutex so concurrent LED-off timers and the read loop's replies never
// interleave partial frames on the wire. A write failure forces a
// synchronous reconnect and a single retry; a read failure is downgraded to
// an empty read with the reconnect deferred to the next operation.
type Serial struct {
	cfg    SerialConfig
	logger *slog.Logger
	bus    *events.Bus // optional, may be nil

	// open is swappable for tests; the default dials the configured port.
	open func() (io.ReadWriteCloser, error)

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex // serializes writes, guards port
	port         io.ReadWriteCloser
	wasConnected bool
	readBuf      []byte // owned by the single reader, no lock needed
}

// NewSerial creates the hardware transport. The port is not opened here;
// the first send or read connects, blocking with constant-delay retries
// until the panel is reachable.
func NewSerial(cfg SerialConfig, logger *slog.Logger, bus *events.Bus) *Serial {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Serial{
		cfg:    cfg,
		logger: logger,
		bus:    bus,
		ctx:    ctx,
		cancel: cancel,
	}
	s.open = s.openPort
	return s
}

// openPort dials the configured serial port.
func (s *Serial) openPort() (io.ReadWriteCloser, error) {
	mode := &serial.Mode{BaudRate: s.cfg.Baud}
	port, err := serial.Open(s.cfg.Port, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(s.cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

// SendLine writes one frame. The mutex is held for the whole operation,
// including any reconnect, so the frame is atomic as seen on the wire.
func (s *Serial) SendLine(line string) error {
	payload := []byte(strings.TrimSpace(line) + "\n")

	s.mu.Lock()
	defer s.mu.Unlock()

	port, err := s.ensureLocked()
	if err != nil {
		return err
	}

	if _, werr := port.Write(payload); werr != nil {
		s.logger.Warn("Serial write failed, reconnecting", "error", werr)
		s.dropLocked()

		port, err = s.ensureLocked()
		if err != nil {
			return err
		}
		if _, werr = port.Write(payload); werr != nil {
			s.dropLocked()
			return fmt.Errorf("serial write after reconnect: %w", werr)
		}
	}

	metrics.RecordLineSent()
	return nil
}

// ReadLine returns the next complete frame, or an empty string when no full
// frame arrived within the read timeout. Read failures mark the link
// disconnected and surface as an empty read; reconnect happens on the next
// send or read. Returns io.EOF once the transport is closed.
func (s *Serial) ReadLine() (string, error) {
	if line, ok := s.popLine(); ok {
		metrics.RecordLineReceived()
		return line, nil
	}

	s.mu.Lock()
	port, err := s.ensureLocked()
	s.mu.Unlock()
	if err != nil {
		return "", io.EOF
	}

	chunk := make([]byte, readChunkSize)
	n, rerr := port.Read(chunk)
	if rerr != nil {
		if s.ctx.Err() != nil {
			return "", io.EOF
		}
		s.logger.Warn("Serial read failed, reconnect deferred", "error", rerr)
		s.mu.Lock()
		s.dropLocked()
		s.mu.Unlock()
		return "", nil
	}
	if n == 0 {
		// Read timeout with nothing buffered
		return "", nil
	}

	s.readBuf = append(s.readBuf, chunk[:n]...)
	if line, ok := s.popLine(); ok {
		metrics.RecordLineReceived()
		return line, nil
	}
	return "", nil
}

// popLine extracts the first newline-terminated frame from the read buffer.
// Invalid byte sequences are dropped rather than failing the read.
func (s *Serial) popLine() (string, bool) {
	idx := strings.IndexByte(string(s.readBuf), '\n')
	if idx < 0 {
		return "", false
	}
	raw := string(s.readBuf[:idx])
	s.readBuf = s.readBuf[idx+1:]
	line := strings.TrimSpace(strings.ToValidUTF8(raw, ""))
	return line, true
}

// Close releases the port. Safe to call repeatedly or before any open; a
// blocked connect loop observes the cancellation and gives up.
func (s *Serial) Close() error {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// ensureLocked returns the open port, connecting first if needed.
// Caller holds s.mu.
func (s *Serial) ensureLocked() (io.ReadWriteCloser, error) {
	if s.port != nil {
		return s.port, nil
	}
	port, err := s.connectLocked()
	if err != nil {
		return nil, err
	}
	s.port = port
	return port, nil
}

// connectLocked opens the port, retrying forever with a constant delay. A
// detached panel must never crash the driver; it waits for reattachment.
// After a successful open it waits out the device reset and sends the
// handshake. Returns ErrClosed only when the transport is closed.
func (s *Serial) connectLocked() (io.ReadWriteCloser, error) {
	for {
		if s.ctx.Err() != nil {
			return nil, ErrClosed
		}

		s.logger.Info("Opening serial port", "port", s.cfg.Port, "baud", s.cfg.Baud)
		port, err := s.open()
		if err != nil {
			s.logger.Warn("Failed to open serial port", "port", s.cfg.Port, "error", err, "retry_in", s.cfg.RetryDelay)
			if !s.sleep(s.cfg.RetryDelay) {
				return nil, ErrClosed
			}
			continue
		}

		// Opening the port resets the board; give it time to boot
		if !s.sleep(s.cfg.SettleDelay) {
			port.Close()
			return nil, ErrClosed
		}

		if _, werr := port.Write([]byte(protocol.Handshake + "\n")); werr != nil {
			s.logger.Warn("Handshake failed, retrying", "error", werr)
			port.Close()
			if !s.sleep(s.cfg.RetryDelay) {
				return nil, ErrClosed
			}
			continue
		}

		s.logger.Info("Serial link ready", "port", s.cfg.Port)
		state := events.LinkConnected
		if s.wasConnected {
			state = events.LinkReconnected
		}
		s.wasConnected = true
		s.publishLink(state)
		return port, nil
	}
}

// dropLocked closes and forgets the port after an I/O failure.
// Caller holds s.mu.
func (s *Serial) dropLocked() {
	if s.port == nil {
		return
	}
	s.port.Close()
	s.port = nil
	s.publishLink(events.LinkDisconnected)
}

func (s *Serial) publishLink(state string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.LinkEvent{
		State:     state,
		Port:      s.cfg.Port,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// sleep waits for d unless the transport is closed first.
func (s *Serial) sleep(d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-s.ctx.Done():
		return false
	}
}
