package testutils

import (
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

// CreateTestSurvivorParams returns round-number objective parameters
func CreateTestSurvivorParams() *role.SurvivorParams {
	return &role.SurvivorParams{
		MinActionTime: 0.5,
		Search: role.SearchParams{
			TimeBase: 5,
			DropRates: map[string]float64{
				"pumpkin_seed": 0.35,
				"wax":          0.3,
				"wick":         0.3,
				"lantern_oil":  0.2,
			},
			RevealChance: 0.15,
		},
		Incubate: role.IncubateParams{
			TimeBase:           30,
			MinTime:            15,
			CoopBonusPerPlayer: 5,
		},
		Carve: role.CarveParams{
			TimePerPumpkin:  8,
			SuccessRateBase: 0.8,
		},
		WaxAndWick: role.WaxParams{TimeBase: 10},
		Ignite:     role.IgniteParams{TimeBase: 3},
		Altar: role.AltarParams{
			PerLanternCharge: 20,
			MaxCharge:        100,
			ChannelTimeBase:  6,
			EscapeDoorTime:   10,
		},
	}
}

// CreateTestDefinition creates a survivor definition with no hooks, no
// loadout and 100 HP
func CreateTestDefinition(codename role.Codename) *role.Definition {
	return &role.Definition{
		Codename:    codename,
		DisplayName: "Test " + string(codename),
		Faction:     role.FactionSurvivor,
		BaseStats: modifiers.StatBlock{
			MaxHP:        100,
			MoveSpeed:    1,
			VisionRadius: 40,
		},
		Signature: role.Signature{BaseNoise: 1, BaseLight: 1},
		Hooks:     map[role.Objective]modifiers.ObjectiveHook{},
		Economy: role.Economy{
			BackpackSlots:   4,
			CarryDebuff:     -0.15,
			CarryLightBonus: 0.5,
		},
		Survivor: CreateTestSurvivorParams(),
	}
}

// WithHook sets one objective hook on a definition and returns it
func WithHook(def *role.Definition, objective role.Objective, hook modifiers.ObjectiveHook) *role.Definition {
	if def.Hooks == nil {
		def.Hooks = make(map[role.Objective]modifiers.ObjectiveHook)
	}
	def.Hooks[objective] = hook
	return def
}

// Float returns a pointer to v for optional hook fields
func Float(v float64) *float64 {
	return &v
}
