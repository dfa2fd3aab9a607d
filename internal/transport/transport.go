// Package transport owns the line-oriented channel to the button panel.
//
// Two implementations exist: Serial speaks to real hardware over a serial
// port with reconnect-on-failure, and Sim reads lines interactively for
// development without a panel attached. The driver depends only on the
// Transport interface.
package transport

import "errors"

// ErrClosed is returned by operations on a closed transport.
var ErrClosed = errors.New("transport closed")

// Transport is a bidirectional line channel to the panel.
//
// ReadLine returns io.EOF when the stream has ended; an empty string with a
// nil error is a harmless empty read (timeout or partial frame) and the
// caller must tolerate both. Close is idempotent and safe to call before
// any successful open.
type Transport interface {
	SendLine(line string) error
	ReadLine() (string, error)
	Close() error
}
