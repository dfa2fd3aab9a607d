// Package protocol implements the panel's line protocol: UTF-8 text frames,
// newline-terminated on the wire, with `|`-separated fields. The first field
// (the topic) selects the frame's meaning.
package protocol

import (
	"strconv"
	"strings"
)

// Field separator on the wire.
const Separator = "|"

// Topics understood by the driver. Topic matching is case-insensitive;
// unknown topics are ignored by the handler, never rejected.
const (
	TopicButton = "BTN"
	TopicReady  = "READY"
	TopicLED    = "LED"
	TopicHello  = "HELLO"
)

// Button actions. Only ActionDown triggers a launch.
const (
	ActionDown = "DOWN"
	ActionUp   = "UP"
)

// Handshake is sent once after the serial link is established.
const Handshake = TopicHello + Separator + "PC"

// LEDMode selects the LED command behavior.
type LEDMode string

// LED modes emitted by the driver. ModeOn is accepted by the panel but only
// used by the bench `send` command.
const (
	ModeOff   LEDMode = "OFF"
	ModeBlink LEDMode = "BLINK"
	ModeOn    LEDMode = "ON"
)

// Split breaks a frame into its fields. The frame is trimmed first; an
// empty or whitespace-only frame yields nil.
func Split(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	return strings.Split(line, Separator)
}

// Topic returns the case-normalized topic of pre-split fields.
func Topic(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// Join reassembles fields into a frame without the trailing newline.
func Join(fields ...string) string {
	return strings.Join(fields, Separator)
}

// LEDCommand builds an LED control frame: LED|<id>|<mode>[|<arg>].
// The argument (blink period in milliseconds) is only meaningful for
// ModeBlink; pass a negative value to omit it.
func LEDCommand(ledID string, mode LEDMode, arg int) string {
	cmd := Join(TopicLED, ledID, string(mode))
	if arg >= 0 {
		cmd += Separator + strconv.Itoa(arg)
	}
	return cmd
}
