package role

import (
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

// Codename identifies a role across data, runtime and events
type Codename string

const (
	CodenameHarvester Codename = "harvester"
	CodenameTracker   Codename = "tracker"
	CodenameRitualist Codename = "ritualist"
	CodenameVanguard  Codename = "vanguard"
)

// Faction separates the two sides of a match
type Faction string

const (
	FactionSurvivor Faction = "survivor"
	FactionOverseer Faction = "overseer"
)

// Objective names a scripted task a hook can modify
type Objective string

const (
	ObjectiveSearch       Objective = "search"
	ObjectiveIncubate     Objective = "incubate"
	ObjectiveCarve        Objective = "carve"
	ObjectiveWaxAndWick   Objective = "wax_and_wick"
	ObjectiveIgnite       Objective = "ignite"
	ObjectiveCarryLantern Objective = "carry_lantern"
	ObjectiveAltar        Objective = "altar"

	// Overseer-side objectives. Accepted in data, not resolved by this engine.
	ObjectivePatrol      Objective = "patrol"
	ObjectiveHunt        Objective = "hunt"
	ObjectiveDownAndBind Objective = "down_and_bind"
	ObjectiveSabotage    Objective = "sabotage"
	ObjectiveGateKeep    Objective = "gate_keep"
)

// KnownObjectives lists every objective name a hook table may use
var KnownObjectives = []Objective{
	ObjectiveSearch, ObjectiveIncubate, ObjectiveCarve, ObjectiveWaxAndWick,
	ObjectiveIgnite, ObjectiveCarryLantern, ObjectiveAltar,
	ObjectivePatrol, ObjectiveHunt, ObjectiveDownAndBind, ObjectiveSabotage, ObjectiveGateKeep,
}

// Definition is the immutable design data for one role. It is created once at
// startup and shared by every runtime of that role.
type Definition struct {
	Codename    Codename                              `yaml:"codename"`
	DisplayName string                                `yaml:"display_name"`
	Faction     Faction                               `yaml:"faction"`
	BaseStats   modifiers.StatBlock                   `yaml:"base_stats"`
	Signature   Signature                             `yaml:"signature"`
	Loadout     Loadout                               `yaml:"loadout"`
	Hooks       map[Objective]modifiers.ObjectiveHook `yaml:"hooks"`
	Economy     Economy                               `yaml:"economy"`
	Survivor    *SurvivorParams                       `yaml:"survivor_params"`
}

// Signature is the base detectability profile consumed by detection systems
type Signature struct {
	BaseNoise float64 `yaml:"base_noise"`
	BaseLight float64 `yaml:"base_light"`
}

// Loadout lists active abilities and passive perks
type Loadout struct {
	Abilities []Ability `yaml:"abilities"`
	Perks     []Perk    `yaml:"perks"`
}

// Ability is an activatable loadout entry. Its effects apply while the
// ability id sits in the runtime's buff set.
type Ability struct {
	ID              string                 `yaml:"id"`
	Name            string                 `yaml:"name"`
	CooldownSeconds float64                `yaml:"cooldown_seconds"`
	DurationSeconds float64                `yaml:"duration_seconds"`
	Effects         modifiers.EffectBundle `yaml:"effects"`
}

// Perk is an always-on loadout entry
type Perk struct {
	ID    string              `yaml:"id"`
	Name  string              `yaml:"name"`
	Stats modifiers.StatBlock `yaml:"stats"`
}

// Economy holds inventory and carry tuning
type Economy struct {
	BackpackSlots   int     `yaml:"backpack_slots"`
	CarryDebuff     float64 `yaml:"carry_debuff"`
	CarryLightBonus float64 `yaml:"carry_light_bonus"`
}

// Hook returns the hook for an objective, or the zero hook when absent
func (d *Definition) Hook(objective Objective) modifiers.ObjectiveHook {
	if d == nil || d.Hooks == nil {
		return modifiers.ObjectiveHook{}
	}
	return d.Hooks[objective]
}

// Ability looks up a loadout ability by id
func (d *Definition) Ability(id string) (Ability, bool) {
	for _, a := range d.Loadout.Abilities {
		if a.ID == id {
			return a, true
		}
	}
	return Ability{}, false
}

// PerkStats sums the stat blocks of every passive perk
func (d *Definition) PerkStats() modifiers.StatBlock {
	blocks := make([]modifiers.StatBlock, 0, len(d.Loadout.Perks))
	for _, p := range d.Loadout.Perks {
		blocks = append(blocks, p.Stats)
	}
	return modifiers.SumStats(blocks...)
}
