package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/smazurov/panelnode/internal/events"
)

// waitFloat polls a counter until it reaches want; bus delivery is async.
func waitFloat(t *testing.T, get func() float64, want float64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if get() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("counter = %v, want %v", get(), want)
}

func TestCollectorCountsEvents(t *testing.T) {
	bus := events.New()
	c := NewCollector(bus)
	c.Start()
	defer c.Stop()

	baseDown := testutil.ToFloat64(buttonEvents.WithLabelValues("DOWN"))
	baseOK := testutil.ToFloat64(launches.WithLabelValues(events.LaunchOK))
	baseConn := testutil.ToFloat64(linkTransitions.WithLabelValues(events.LinkConnected))
	baseReady := testutil.ToFloat64(panelReady)

	bus.Publish(events.ButtonEvent{ButtonID: "1", Action: "DOWN"})
	bus.Publish(events.ButtonEvent{ButtonID: "1", Action: "DOWN"})
	bus.Publish(events.LaunchResultEvent{ButtonID: "1", Result: events.LaunchOK})
	bus.Publish(events.LinkEvent{State: events.LinkConnected, Port: "/dev/ttyUSB0"})
	bus.Publish(events.PanelReadyEvent{Detail: "v2"})

	waitFloat(t, func() float64 {
		return testutil.ToFloat64(buttonEvents.WithLabelValues("DOWN"))
	}, baseDown+2)
	waitFloat(t, func() float64 {
		return testutil.ToFloat64(launches.WithLabelValues(events.LaunchOK))
	}, baseOK+1)
	waitFloat(t, func() float64 {
		return testutil.ToFloat64(linkTransitions.WithLabelValues(events.LinkConnected))
	}, baseConn+1)
	waitFloat(t, func() float64 {
		return testutil.ToFloat64(panelReady)
	}, baseReady+1)
}

func TestCollectorStopUnsubscribes(t *testing.T) {
	bus := events.New()
	c := NewCollector(bus)
	c.Start()
	c.Stop()

	base := testutil.ToFloat64(launches.WithLabelValues(events.LaunchError))
	bus.Publish(events.LaunchResultEvent{ButtonID: "1", Result: events.LaunchError})

	time.Sleep(50 * time.Millisecond)
	if got := testutil.ToFloat64(launches.WithLabelValues(events.LaunchError)); got != base {
		t.Errorf("counter moved after Stop: %v -> %v", base, got)
	}
}
