package transport

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Sim is the interactive mock Transport for development without hardware.
// Sent lines are logged instead of transmitted; reads block on text input
// so the protocol can be exercised by typing frames like "BTN|1|DOWN".
type Sim struct {
	logger  *slog.Logger
	prompt  io.Writer
	scanner *bufio.Scanner
	mu      sync.Mutex
}

// NewSim creates a mock transport reading frames from stdin.
func NewSim(logger *slog.Logger) *Sim {
	return NewSimWithInput(os.Stdin, os.Stdout, logger)
}

// NewSimWithInput creates a mock transport reading from r. The prompt is
// written to w before each read; pass io.Discard to silence it.
func NewSimWithInput(r io.Reader, w io.Writer, logger *slog.Logger) *Sim {
	return &Sim{
		logger:  logger,
		prompt:  w,
		scanner: bufio.NewScanner(r),
	}
}

// SendLine logs the frame that would have gone to the panel.
func (s *Sim) SendLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("SIM send", "line", strings.TrimSpace(line))
	return nil
}

// ReadLine blocks on the next input line. End of input returns io.EOF so
// the run loop terminates cleanly.
func (s *Sim) ReadLine() (string, error) {
	fmt.Fprint(s.prompt, "SIM BTN> ")
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

// Close is a no-op; there is no channel to release.
func (s *Sim) Close() error {
	return nil
}
