package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
	"github.com/KirkDiggler/lanternfall/internal/testutils"
)

func TestValidate_AcceptsCompleteDefinition(t *testing.T) {
	def := testutils.CreateTestDefinition(role.CodenameTracker)
	require.NoError(t, def.Validate())
}

func TestValidate_FailsFast(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *role.Definition)
		wantMsg string
	}{
		{
			name:    "missing survivor params",
			mutate:  func(d *role.Definition) { d.Survivor = nil },
			wantMsg: "survivor_params is required",
		},
		{
			name:    "missing display name",
			mutate:  func(d *role.Definition) { d.DisplayName = "" },
			wantMsg: "display_name is required",
		},
		{
			name:    "unknown faction",
			mutate:  func(d *role.Definition) { d.Faction = "ghost" },
			wantMsg: "unknown faction",
		},
		{
			name:    "zero max hp",
			mutate:  func(d *role.Definition) { d.BaseStats.MaxHP = 0 },
			wantMsg: "max_hp must be positive",
		},
		{
			name:    "zero move speed",
			mutate:  func(d *role.Definition) { d.BaseStats.MoveSpeed = 0 },
			wantMsg: "move_speed must be positive",
		},
		{
			name:    "zero vision",
			mutate:  func(d *role.Definition) { d.BaseStats.VisionRadius = 0 },
			wantMsg: "vision_radius must be positive",
		},
		{
			name: "unknown objective hook",
			mutate: func(d *role.Definition) {
				d.Hooks["juggle"] = modifiers.ObjectiveHook{}
			},
			wantMsg: "unknown objective",
		},
		{
			name: "duplicate ability",
			mutate: func(d *role.Definition) {
				d.Loadout.Abilities = []role.Ability{{ID: "dash"}, {ID: "dash"}}
			},
			wantMsg: "duplicate ability",
		},
		{
			name: "ability without id",
			mutate: func(d *role.Definition) {
				d.Loadout.Abilities = []role.Ability{{Name: "Nameless"}}
			},
			wantMsg: "ability without id",
		},
		{
			name:    "missing search time",
			mutate:  func(d *role.Definition) { d.Survivor.Search.TimeBase = 0 },
			wantMsg: "search.time_base must be positive",
		},
		{
			name:    "empty drop rates",
			mutate:  func(d *role.Definition) { d.Survivor.Search.DropRates = nil },
			wantMsg: "drop_rates is required",
		},
		{
			name:    "drop rate out of range",
			mutate:  func(d *role.Definition) { d.Survivor.Search.DropRates["wax"] = 1.5 },
			wantMsg: "search.drop_rates.wax must be within [0, 1]",
		},
		{
			name:    "max charge below per lantern",
			mutate:  func(d *role.Definition) { d.Survivor.Altar.MaxCharge = 10 },
			wantMsg: "max_charge is below per_lantern_charge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testutils.CreateTestDefinition(role.CodenameHarvester)
			tt.mutate(def)

			err := def.Validate()

			require.Error(t, err)
			assert.True(t, apperr.IsInvalidDefinition(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, "harvester", apperr.GetMeta(err)["codename"])
		})
	}
}

func TestValidate_OverseerNeedsNoSurvivorParams(t *testing.T) {
	def := testutils.CreateTestDefinition("warden")
	def.Faction = role.FactionOverseer
	def.Survivor = nil
	def.Hooks[role.ObjectivePatrol] = modifiers.ObjectiveHook{BindWindowBonus: 0.5}

	assert.NoError(t, def.Validate())
}

func TestValidate_Nil(t *testing.T) {
	var def *role.Definition
	assert.True(t, apperr.IsInvalidDefinition(def.Validate()))
}

func TestDefinition_Lookups(t *testing.T) {
	def := testutils.CreateTestDefinition(role.CodenameVanguard)
	def.Loadout = role.Loadout{
		Abilities: []role.Ability{{ID: "sprint", CooldownSeconds: 30, DurationSeconds: 5}},
		Perks: []role.Perk{
			{ID: "thick_skin", Stats: modifiers.StatBlock{MaxHP: 10}},
			{ID: "light_step", Stats: modifiers.StatBlock{NoiseMultiplier: -0.1}},
		},
	}
	testutils.WithHook(def, role.ObjectiveCarve, modifiers.ObjectiveHook{
		EffectBundle: modifiers.EffectBundle{CarveSuccess: 0.1},
	})

	ability, ok := def.Ability("sprint")
	require.True(t, ok)
	assert.Equal(t, 30.0, ability.CooldownSeconds)

	_, ok = def.Ability("missing")
	assert.False(t, ok)

	perks := def.PerkStats()
	assert.Equal(t, 10.0, perks.MaxHP)
	assert.Equal(t, -0.1, perks.NoiseMultiplier)

	assert.Equal(t, 0.1, def.Hook(role.ObjectiveCarve).CarveSuccess)
	assert.Equal(t, modifiers.ObjectiveHook{}, def.Hook(role.ObjectiveAltar))
}
