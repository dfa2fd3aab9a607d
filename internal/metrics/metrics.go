// Package metrics exposes Prometheus counters for panel activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	buttonEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "panelnode",
		Subsystem: "panel",
		Name:      "button_events_total",
		Help:      "Button frames received from the panel, by action",
	}, []string{"action"})

	launches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "panelnode",
		Subsystem: "driver",
		Name:      "launches_total",
		Help:      "Button-triggered launch attempts, by result",
	}, []string{"result"})

	linkTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "panelnode",
		Subsystem: "transport",
		Name:      "link_transitions_total",
		Help:      "Serial link state transitions, by state",
	}, []string{"state"})

	panelReady = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "panelnode",
		Subsystem: "panel",
		Name:      "ready_total",
		Help:      "READY announcements received from the panel",
	})

	linesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "panelnode",
		Subsystem: "transport",
		Name:      "lines_sent_total",
		Help:      "Frames written to the serial link",
	})

	linesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "panelnode",
		Subsystem: "transport",
		Name:      "lines_received_total",
		Help:      "Complete frames read from the serial link",
	})
)

// RecordButton counts a button frame by its action.
func RecordButton(action string) {
	buttonEvents.WithLabelValues(action).Inc()
}

// RecordLaunch counts a launch attempt by its result.
func RecordLaunch(result string) {
	launches.WithLabelValues(result).Inc()
}

// RecordLinkTransition counts a serial link state change.
func RecordLinkTransition(state string) {
	linkTransitions.WithLabelValues(state).Inc()
}

// RecordPanelReady counts a READY announcement.
func RecordPanelReady() {
	panelReady.Inc()
}

// RecordLineSent counts a frame written to the link.
func RecordLineSent() {
	linesSent.Inc()
}

// RecordLineReceived counts a complete frame read from the link.
func RecordLineReceived() {
	linesReceived.Inc()
}

// HTTPHandler returns the Prometheus metrics HTTP handler.
// This collects all promauto-registered metrics automatically.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}
