package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(ButtonEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event dispatches on the concrete type, so switch to call the
	// generic Publish with the right instantiation.
	switch e := ev.(type) {
	case ButtonEvent:
		event.Publish(b.dispatcher, e)
	case PanelReadyEvent:
		event.Publish(b.dispatcher, e)
	case LaunchResultEvent:
		event.Publish(b.dispatcher, e)
	case LinkEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler's parameter type determines which events it receives.
// Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e ButtonEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ButtonEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PanelReadyEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LaunchResultEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LinkEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// No-op unsubscribe for unrecognized handler types
		return func() {}
	}
}

// SubscribeToChannel subscribes to events of type T and forwards them to ch.
// Events are dropped when the channel is full so a slow consumer cannot
// block the dispatcher. Returns an unsubscribe function.
func SubscribeToChannel[T Event](b *Bus, ch chan<- any) func() {
	return event.Subscribe(b.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
