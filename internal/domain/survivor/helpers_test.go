package survivor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lanternfall/internal/dice"
	mockdice "github.com/KirkDiggler/lanternfall/internal/dice/mock"
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/domain/survivor"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/uuid"
)

var allEventTypes = []events.EventType{
	events.EventTypeOnDown,
	events.EventTypeOnInjured,
	events.EventTypeOnRecovered,
	events.EventTypeOnDamageTaken,
	events.EventTypeOnDodged,
	events.EventTypeOnRevealed,
	events.EventTypeOnQTEFailed,
	events.EventTypeOnAltarInstant,
	events.EventTypeOnCleanse,
	events.EventTypeOnAbilityUsed,
	events.EventTypeOnBuffExpired,
}

type harness struct {
	rt       *survivor.Runtime
	recorder *events.Recorder
}

// newHarness builds a runtime with a recording bus and the given roller
func newHarness(t *testing.T, def *role.Definition, roller dice.Roller) *harness {
	t.Helper()

	bus := events.NewBus()
	recorder := events.NewRecorder("test-recorder")
	bus.SubscribeAll(recorder, allEventTypes...)

	rt, err := survivor.NewRuntime(def,
		survivor.WithPlayerID("player-1"),
		survivor.WithIDGenerator(uuid.NewSequenceGenerator("rt")),
		survivor.WithRoller(roller),
		survivor.WithEmitter(bus),
	)
	require.NoError(t, err)

	return &harness{rt: rt, recorder: recorder}
}

// scripted builds a runtime whose draws come from rolls, in order
func scripted(t *testing.T, def *role.Definition, rolls ...float64) (*harness, *mockdice.ManualMockRoller) {
	t.Helper()
	roller := mockdice.NewManualMockRoller(rolls...)
	return newHarness(t, def, roller), roller
}
