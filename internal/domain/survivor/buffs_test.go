package survivor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
	"github.com/KirkDiggler/lanternfall/internal/testutils"
)

func braceDefinition() *role.Definition {
	def := testutils.CreateTestDefinition(role.CodenameHarvester)
	def.Loadout.Abilities = []role.Ability{{
		ID:              "brace",
		Name:            "Brace",
		CooldownSeconds: 30,
		DurationSeconds: 5,
		Effects: modifiers.EffectBundle{
			Stats:       modifiers.StatBlock{MoveSpeed: 0.1, VisionRadius: 0.25},
			HealInstant: 10,
		},
	}}
	return def
}

func TestBuffRegistry(t *testing.T) {
	h, _ := scripted(t, testutils.CreateTestDefinition(role.CodenameHarvester))
	rt := h.rt

	rt.AddBuff("haste", 5*time.Second)
	rt.AddBuff("haste", 0)
	rt.AddDebuff("slowed", 3*time.Second)
	rt.AddDebuff("blinded", 0)

	assert.Equal(t, []string{"haste"}, rt.Buffs(), "no duplicate ids")
	assert.Equal(t, []string{"blinded", "slowed"}, rt.Debuffs())

	rt.RemoveBuff("missing")
	rt.RemoveDebuff("blinded")
	rt.RemoveDebuff("blinded")
	assert.False(t, rt.HasDebuff("blinded"))

	rt.ClearAllDebuffs()
	assert.Empty(t, rt.Debuffs())
	assert.True(t, rt.HasBuff("haste"))

	rt.Advance(3 * time.Second)
	assert.Zero(t, h.recorder.Count(events.EventTypeOnBuffExpired), "cleared debuff timer fires harmlessly")

	rt.Advance(5 * time.Second)
	assert.False(t, rt.HasBuff("haste"))
	assert.Equal(t, 1, h.recorder.Count(events.EventTypeOnBuffExpired))
}

func TestUseAbility(t *testing.T) {
	h, roller := scripted(t, braceDefinition())
	rt := h.rt

	rt.TakeDamage(40, modifiers.DamagePhysical)

	require.True(t, rt.UseAbility("brace"))
	assert.Equal(t, 70.0, rt.CurrentHP())
	assert.True(t, rt.HasBuff("brace"))
	assert.InDelta(t, 1.1, rt.MoveSpeed(), 1e-9)
	assert.InDelta(t, 50.0, rt.VisionRadius(), 1e-9)
	assert.Equal(t, 30, rt.CooldownRemaining("brace"))

	used := h.recorder.Events()
	require.NotEmpty(t, used)
	last := used[len(used)-1]
	assert.Equal(t, events.EventTypeOnAbilityUsed, last.Type)
	assert.Equal(t, "brace", last.String(events.KeyAbilityID))
	assert.Equal(t, 10.0, last.Float(events.KeyAmount))

	assert.False(t, rt.UseAbility("brace"), "cooling down")

	rt.Advance(5 * time.Second)
	assert.False(t, rt.HasBuff("brace"))
	assert.InDelta(t, 1.0, rt.MoveSpeed(), 1e-9)
	assert.Equal(t, 25, rt.CooldownRemaining("brace"))

	rt.Advance(30 * time.Second)
	assert.Zero(t, rt.CooldownRemaining("brace"))
	assert.True(t, rt.UseAbility("brace"))
	assert.Zero(t, roller.Used())
}

func TestUseAbility_Rejected(t *testing.T) {
	h, _ := scripted(t, braceDefinition())

	assert.False(t, h.rt.UseAbility("fireball"), "not in loadout")
	assert.Zero(t, h.rt.CooldownRemaining("fireball"))

	h.rt.TakeDamage(1000, modifiers.DamagePhysical)
	assert.False(t, h.rt.UseAbility("brace"), "downed")
	assert.Zero(t, h.recorder.Count(events.EventTypeOnAbilityUsed))
}

func TestReset_ClearsCooldowns(t *testing.T) {
	h, _ := scripted(t, braceDefinition())

	require.True(t, h.rt.UseAbility("brace"))
	h.rt.Reset()

	assert.Zero(t, h.rt.CooldownRemaining("brace"))
	assert.False(t, h.rt.HasBuff("brace"))
	assert.True(t, h.rt.UseAbility("brace"))
}
