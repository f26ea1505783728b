package survivor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/lanternfall/internal/dice"
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/domain/survivor"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
	"github.com/KirkDiggler/lanternfall/internal/events"
	mockevents "github.com/KirkDiggler/lanternfall/internal/events/mock"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
	"github.com/KirkDiggler/lanternfall/internal/testutils"
	"github.com/KirkDiggler/lanternfall/internal/uuid"
)

func TestNewRuntime(t *testing.T) {
	t.Run("starts healthy at full hp including perks", func(t *testing.T) {
		def := testutils.CreateTestDefinition(role.CodenameVanguard)
		def.Loadout.Perks = []role.Perk{{ID: "iron_nerve", Stats: modifiers.StatBlock{MaxHP: 20}}}

		h, _ := scripted(t, def)

		assert.Equal(t, "rt-1", h.rt.ID())
		assert.Equal(t, "player-1", h.rt.PlayerID())
		assert.Equal(t, 120.0, h.rt.MaxHP())
		assert.Equal(t, 120.0, h.rt.CurrentHP())
		assert.Equal(t, survivor.HealthHealthy, h.rt.Health())
		assert.Same(t, def, h.rt.Definition())
		assert.IsType(t, &survivor.Vanguard{}, h.rt.Specialization())
	})

	tests := []struct {
		name   string
		mutate func(d *role.Definition)
	}{
		{name: "missing survivor params", mutate: func(d *role.Definition) { d.Survivor = nil }},
		{name: "overseer role", mutate: func(d *role.Definition) { d.Faction = role.FactionOverseer }},
		{name: "no specialization for codename", mutate: func(d *role.Definition) { d.Codename = "jester" }},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			def := testutils.CreateTestDefinition(role.CodenameHarvester)
			tt.mutate(def)

			rt, err := survivor.NewRuntime(def)

			assert.Nil(t, rt)
			assert.True(t, apperr.IsInvalidDefinition(err))
		})
	}

	t.Run("explicit specialization for custom roles", func(t *testing.T) {
		def := testutils.CreateTestDefinition("jester")

		rt, err := survivor.NewRuntime(def, survivor.WithSpecialization(survivor.NewHarvester()))

		require.NoError(t, err)
		assert.NotEmpty(t, rt.ID())
	})
}

func TestNewSpecialization(t *testing.T) {
	for _, codename := range []role.Codename{
		role.CodenameHarvester, role.CodenameTracker, role.CodenameRitualist, role.CodenameVanguard,
	} {
		spec, err := survivor.NewSpecialization(codename)
		require.NoError(t, err)
		assert.Equal(t, codename, spec.Codename())
	}

	first, _ := survivor.NewSpecialization(role.CodenameTracker)
	second, _ := survivor.NewSpecialization(role.CodenameTracker)
	assert.NotSame(t, first, second, "state is per runtime")
}

func TestRuntime_ResetIsIdempotent(t *testing.T) {
	def := testutils.CreateTestDefinition(role.CodenameTracker)
	h, roller := scripted(t, def)

	tracker := h.rt.Specialization().(*survivor.Tracker)
	tracker.StartTracking()
	h.rt.StartCarryLantern()
	h.rt.AddBuff("haste", 5*time.Second)
	h.rt.AddDebuff("slowed", 0)
	h.rt.TakeDamage(150, modifiers.DamagePhysical)
	require.True(t, h.rt.IsDowned())

	h.rt.Reset()
	first := h.rt.GetStatus()
	h.rt.Reset()
	second := h.rt.GetStatus()

	assert.Equal(t, first, second)
	assert.Equal(t, 100.0, first.CurrentHP)
	assert.Equal(t, survivor.HealthHealthy, first.Health)
	assert.False(t, first.IsDowned)
	assert.False(t, first.IsInjured)
	assert.False(t, first.IsCarryingLantern)
	assert.Empty(t, first.Buffs)
	assert.Empty(t, first.Debuffs)
	assert.False(t, tracker.IsTracking())
	assert.Zero(t, roller.Used())

	assert.Empty(t, h.rt.Advance(time.Minute), "cleared timers fire nothing")
}

func TestRuntime_GetStatus(t *testing.T) {
	def := testutils.CreateTestDefinition(role.CodenameHarvester)
	h, _ := scripted(t, def)

	h.rt.AddBuff("b-buff", 0)
	h.rt.AddBuff("a-buff", 0)
	h.rt.AddDebuff("slowed", 0)
	h.rt.StartCarryLantern()
	h.rt.Advance(3 * time.Second)

	status := h.rt.GetStatus()

	assert.Equal(t, "rt-1", status.RuntimeID)
	assert.Equal(t, "player-1", status.PlayerID)
	assert.Equal(t, role.CodenameHarvester, status.Codename)
	assert.Equal(t, "Test harvester", status.DisplayName)
	assert.Equal(t, 100.0, status.MaxHP)
	assert.True(t, status.IsCarryingLantern)
	assert.Equal(t, []string{"a-buff", "b-buff"}, status.Buffs)
	assert.Equal(t, []string{"slowed"}, status.Debuffs)
	assert.InDelta(t, 0.85, status.MoveSpeed, 1e-9)
	assert.InDelta(t, 40.0, status.VisionRadius, 1e-9)
	assert.InDelta(t, 1.5, status.Signature.Light, 1e-9)
	assert.Equal(t, 3*time.Second, status.At)

	status.Buffs[0] = "mutated"
	assert.Equal(t, []string{"a-buff", "b-buff"}, h.rt.Buffs(), "status holds copies")
}

func TestRuntime_EmitterErrorsDoNotChangeResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	emitter := mockevents.NewMockEmitter(ctrl)

	def := testutils.CreateTestDefinition(role.CodenameHarvester)
	rt, err := survivor.NewRuntime(def,
		survivor.WithRoller(dice.NewSeededRoller(1)),
		survivor.WithEmitter(emitter),
		survivor.WithIDGenerator(uuid.NewSequenceGenerator("rt")),
	)
	require.NoError(t, err)

	var got []events.EventType
	emitter.EXPECT().Emit(gomock.Any()).DoAndReturn(func(e events.Event) error {
		got = append(got, e.GetType())
		roleEvent := e.(*events.RoleEvent)
		assert.Equal(t, "rt-1", roleEvent.RuntimeID)
		assert.Equal(t, role.CodenameHarvester, roleEvent.Codename)
		return errors.New("listener down")
	}).Times(2)

	applied := rt.TakeDamage(60, modifiers.DamagePhysical)

	assert.Equal(t, 60.0, applied)
	assert.True(t, rt.IsInjured())
	assert.Equal(t, []events.EventType{events.EventTypeOnDamageTaken, events.EventTypeOnInjured}, got)
}

func TestRuntime_AdvanceEmitsExpiries(t *testing.T) {
	def := testutils.CreateTestDefinition(role.CodenameHarvester)
	h, _ := scripted(t, def)

	h.rt.AddBuff("haste", 2*time.Second)
	h.rt.AddDebuff("slowed", 4*time.Second)

	assert.Empty(t, h.rt.Advance(time.Second))
	assert.Len(t, h.rt.Advance(5*time.Second), 2)

	expired := h.recorder.Events()
	require.Len(t, expired, 2)
	assert.Equal(t, "haste", expired[0].String(events.KeyEffectID))
	assert.Equal(t, "buff", expired[0].String(events.KeyKind))
	assert.Equal(t, "slowed", expired[1].String(events.KeyEffectID))
	assert.Equal(t, "debuff", expired[1].String(events.KeyKind))
	assert.Equal(t, 5*time.Second, h.rt.Now())
}
