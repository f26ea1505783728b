package events

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
		logger:    slog.Default().With("component", "event_bus"),
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)

	// Stable so equal priorities keep subscription order
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})

	b.logger.Debug("subscribed listener",
		"listener", listener.ID(), "event", eventType, "priority", listener.Priority())
}

// SubscribeAll adds one listener to several event types
func (b *Bus) SubscribeAll(listener EventListener, eventTypes ...EventType) {
	for _, eventType := range eventTypes {
		b.Subscribe(eventType, listener)
	}
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		b.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)

		b.logger.Debug("unsubscribed listener", "listener", listenerID, "event", eventType)
		return
	}
}

// Emit sends an event to all registered listeners
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	b.logger.Debug("emitting event", "event", event.GetType(), "listeners", len(listeners))

	// Process listeners in priority order
	for _, listener := range listeners {
		if event.IsCancelled() {
			b.logger.Debug("event cancelled, stopping propagation", "event", event.GetType())
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
	b.logger.Debug("cleared all listeners")
}

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	Name  string
	Order int
	Fn    func(Event) error
}

func (l *ListenerFunc) ID() string                { return l.Name }
func (l *ListenerFunc) Priority() int             { return l.Order }
func (l *ListenerFunc) HandleEvent(e Event) error { return l.Fn(e) }

// Recorder keeps every role event it receives, for tests and simulations
type Recorder struct {
	mu     sync.Mutex
	name   string
	events []*RoleEvent
}

// NewRecorder creates a recorder listener
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

func (r *Recorder) ID() string    { return r.name }
func (r *Recorder) Priority() int { return PriorityAudit }

// HandleEvent stores role events and ignores anything else
func (r *Recorder) HandleEvent(e Event) error {
	roleEvent, ok := e.(*RoleEvent)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, roleEvent)
	return nil
}

// Events returns a copy of everything recorded
func (r *Recorder) Events() []*RoleEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*RoleEvent(nil), r.events...)
}

// Count returns how many events of a type were recorded
func (r *Recorder) Count(eventType EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

// Reset drops recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
