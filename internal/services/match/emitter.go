package match

import (
	"log/slog"
	"sync"

	"github.com/KirkDiggler/lanternfall/internal/events"
)

// deferredEmitter sits between runtimes and the match bus. While the service
// holds its lock, events are queued and delivered once the lock is released,
// so listeners may call back into the service.
type deferredEmitter struct {
	bus    *events.Bus
	logger *slog.Logger

	mu      sync.Mutex
	holding bool
	queued  []events.Event
}

func newDeferredEmitter(bus *events.Bus, logger *slog.Logger) *deferredEmitter {
	return &deferredEmitter{bus: bus, logger: logger}
}

// Emit implements events.Emitter
func (d *deferredEmitter) Emit(event events.Event) error {
	d.mu.Lock()
	if d.holding {
		d.queued = append(d.queued, event)
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()
	return d.bus.Emit(event)
}

func (d *deferredEmitter) hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.holding = true
}

// release stops queueing and hands back what was queued, in emit order
func (d *deferredEmitter) release() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.holding = false
	pending := d.queued
	d.queued = nil
	return pending
}

func (d *deferredEmitter) deliver(pending []events.Event) {
	for _, event := range pending {
		if err := d.bus.Emit(event); err != nil {
			d.logger.Warn("event listener failed", "event_type", event.GetType(), "error", err)
		}
	}
}
