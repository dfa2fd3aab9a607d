package metrics

import (
	"github.com/smazurov/panelnode/internal/events"
)

// Collector feeds panel events from the bus into the Prometheus counters.
type Collector struct {
	bus    *events.Bus
	unsubs []func()
}

// NewCollector creates a collector bound to the bus. Call Start to begin
// counting.
func NewCollector(bus *events.Bus) *Collector {
	return &Collector{bus: bus}
}

// Start subscribes to the panel event streams.
func (c *Collector) Start() {
	c.unsubs = append(c.unsubs,
		c.bus.Subscribe(func(e events.ButtonEvent) {
			RecordButton(e.Action)
		}),
		c.bus.Subscribe(func(e events.LaunchResultEvent) {
			RecordLaunch(e.Result)
		}),
		c.bus.Subscribe(func(e events.LinkEvent) {
			RecordLinkTransition(e.State)
		}),
		c.bus.Subscribe(func(e events.PanelReadyEvent) {
			RecordPanelReady()
		}),
	)
}

// Stop unsubscribes from the bus.
func (c *Collector) Stop() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}
