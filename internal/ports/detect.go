// Package ports locates the panel's serial port.
package ports

import (
	"fmt"
	"log/slog"
	"strings"

	"go.bug.st/serial/enumerator"
)

// Candidate describes one serial port seen during enumeration.
type Candidate struct {
	Name         string
	Description  string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
}

// USB identifiers of the usual Arduino-class bridges: genuine Arduino
// boards and the WCH CH340 clones.
var preferredVIDs = map[string]bool{
	"2341": true, // Arduino
	"2a03": true, // Arduino (arduino.org era)
	"1a86": true, // WCH CH340
}

var preferredTokens = []string{"arduino", "wchusb", "ch340"}

// List enumerates the available serial ports.
func List() ([]Candidate, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerating serial ports: %w", err)
	}

	candidates := make([]Candidate, 0, len(details))
	for _, d := range details {
		candidates = append(candidates, Candidate{
			Name:         d.Name,
			Description:  d.Product,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
		})
	}
	return candidates, nil
}

// Detect returns the serial port to use. An explicit port wins; otherwise
// the available ports are scanned, preferring one that looks like an
// Arduino-class bridge and falling back to the first port. No ports at all
// is an error.
func Detect(explicit string, logger *slog.Logger) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	candidates, err := List()
	if err != nil {
		return "", err
	}

	pick, err := pick(candidates)
	if err != nil {
		return "", err
	}

	if pick.preferred {
		logger.Info("Detected panel", "port", pick.name, "description", pick.description)
	} else {
		logger.Warn("Fell back to first serial port", "port", pick.name)
	}
	return pick.name, nil
}

type picked struct {
	name        string
	description string
	preferred   bool
}

// pick applies the preference rules to an enumeration snapshot.
func pick(candidates []Candidate) (picked, error) {
	if len(candidates) == 0 {
		return picked{}, fmt.Errorf("no serial ports available: plug in the panel or pass --port")
	}

	for _, c := range candidates {
		if Preferred(c) {
			return picked{name: c.Name, description: c.Description, preferred: true}, nil
		}
	}

	return picked{name: candidates[0].Name, description: candidates[0].Description}, nil
}

// Preferred reports whether a port looks like an Arduino-class bridge.
func Preferred(c Candidate) bool {
	if preferredVIDs[strings.ToLower(c.VID)] {
		return true
	}
	descriptor := strings.ToLower(c.Description)
	for _, token := range preferredTokens {
		if strings.Contains(descriptor, token) {
			return true
		}
	}
	return false
}
