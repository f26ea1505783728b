package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/events"
)

func TestEventBus_DeliversRoleEvent(t *testing.T) {
	bus := events.NewBus()
	recorder := events.NewRecorder("recorder")
	bus.Subscribe(events.EventTypeOnInjured, recorder)

	event := &events.RoleEvent{
		Type:      events.EventTypeOnInjured,
		RuntimeID: "rt-1",
		PlayerID:  "player-1",
		Codename:  role.CodenameVanguard,
		Payload:   map[string]any{events.KeyAmount: 12.5, events.KeyDamage: "physical"},
	}

	require.NoError(t, bus.Emit(event))

	got := recorder.Events()
	require.Len(t, got, 1)
	assert.Same(t, event, got[0])
	assert.Equal(t, 12.5, got[0].Float(events.KeyAmount))
	assert.Equal(t, "physical", got[0].String(events.KeyDamage))
	assert.Zero(t, got[0].Float("missing"))
	assert.Equal(t, 0, recorder.Count(events.EventTypeOnDown))
}

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()

	// Track execution order
	var executionOrder []string
	listener := func(id string, priority int) *events.ListenerFunc {
		return &events.ListenerFunc{
			Name:  id,
			Order: priority,
			Fn: func(events.Event) error {
				executionOrder = append(executionOrder, id)
				return nil
			},
		}
	}

	// Subscribe in random order
	bus.Subscribe(events.EventTypeOnDown, listener("audit", events.PriorityAudit))
	bus.Subscribe(events.EventTypeOnDown, listener("gameplay", events.PriorityGameplay))
	bus.Subscribe(events.EventTypeOnDown, listener("broadcast", events.PriorityBroadcast))

	require.NoError(t, bus.Emit(&events.RoleEvent{Type: events.EventTypeOnDown}))

	// Lower priority number runs first
	assert.Equal(t, []string{"gameplay", "broadcast", "audit"}, executionOrder)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus()

	var secondExecuted bool
	bus.Subscribe(events.EventTypeOnQTEFailed, &events.ListenerFunc{
		Name:  "first",
		Order: 100,
		Fn: func(e events.Event) error {
			e.Cancel()
			return nil
		},
	})
	bus.Subscribe(events.EventTypeOnQTEFailed, &events.ListenerFunc{
		Name:  "second",
		Order: 200,
		Fn: func(events.Event) error {
			secondExecuted = true
			return nil
		},
	})

	event := &events.RoleEvent{Type: events.EventTypeOnQTEFailed}
	require.NoError(t, bus.Emit(event))

	assert.False(t, secondExecuted)
	assert.True(t, event.IsCancelled())
}

func TestEventBus_ListenerErrorStopsEmit(t *testing.T) {
	bus := events.NewBus()
	boom := errors.New("boom")

	bus.Subscribe(events.EventTypeOnRevealed, &events.ListenerFunc{
		Name: "broken",
		Fn:   func(events.Event) error { return boom },
	})

	err := bus.Emit(&events.RoleEvent{Type: events.EventTypeOnRevealed})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "listener broken failed")
}

func TestEventBus_UnsubscribeAndClear(t *testing.T) {
	bus := events.NewBus()
	first := events.NewRecorder("first")
	second := events.NewRecorder("second")

	bus.SubscribeAll(first, events.EventTypeOnDown, events.EventTypeOnRecovered)
	bus.Subscribe(events.EventTypeOnDown, second)

	bus.Unsubscribe(events.EventTypeOnDown, "first")
	require.NoError(t, bus.Emit(&events.RoleEvent{Type: events.EventTypeOnDown}))
	require.NoError(t, bus.Emit(&events.RoleEvent{Type: events.EventTypeOnRecovered}))

	assert.Equal(t, 0, first.Count(events.EventTypeOnDown))
	assert.Equal(t, 1, first.Count(events.EventTypeOnRecovered))
	assert.Equal(t, 1, second.Count(events.EventTypeOnDown))

	bus.Clear()
	require.NoError(t, bus.Emit(&events.RoleEvent{Type: events.EventTypeOnDown}))
	assert.Equal(t, 1, second.Count(events.EventTypeOnDown))

	second.Reset()
	assert.Empty(t, second.Events())
}
