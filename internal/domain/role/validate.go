package role

import (
	"sort"

	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
)

// Validate reports the first missing or out-of-range required field.
// A definition that fails here must never reach a runtime.
func (d *Definition) Validate() error {
	if d == nil {
		return apperr.InvalidDefinitionf("role definition is nil")
	}
	if d.Codename == "" {
		return apperr.InvalidDefinitionf("role codename is required")
	}

	fail := func(format string, args ...any) error {
		return apperr.InvalidDefinitionf(format, args...).WithMeta("codename", string(d.Codename))
	}

	if d.DisplayName == "" {
		return fail("role %s: display_name is required", d.Codename)
	}
	switch d.Faction {
	case FactionSurvivor, FactionOverseer:
	default:
		return fail("role %s: unknown faction %q", d.Codename, d.Faction)
	}

	if d.BaseStats.MaxHP <= 0 {
		return fail("role %s: base_stats.max_hp must be positive", d.Codename)
	}
	if d.BaseStats.MoveSpeed <= 0 {
		return fail("role %s: base_stats.move_speed must be positive", d.Codename)
	}
	if d.BaseStats.VisionRadius <= 0 {
		return fail("role %s: base_stats.vision_radius must be positive", d.Codename)
	}

	for objective := range d.Hooks {
		if !isKnownObjective(objective) {
			return fail("role %s: hook for unknown objective %q", d.Codename, objective)
		}
	}

	seen := make(map[string]bool, len(d.Loadout.Abilities))
	for _, a := range d.Loadout.Abilities {
		if a.ID == "" {
			return fail("role %s: loadout ability without id", d.Codename)
		}
		if seen[a.ID] {
			return fail("role %s: duplicate ability %q", d.Codename, a.ID)
		}
		seen[a.ID] = true
		if a.CooldownSeconds < 0 || a.DurationSeconds < 0 {
			return fail("role %s: ability %q has negative timing", d.Codename, a.ID)
		}
	}

	if d.Economy.BackpackSlots < 0 {
		return fail("role %s: economy.backpack_slots cannot be negative", d.Codename)
	}

	if d.Faction == FactionSurvivor {
		if d.Survivor == nil {
			return fail("role %s: survivor_params is required for survivor roles", d.Codename)
		}
		if err := d.Survivor.validate(); err != nil {
			return fail("role %s: %s", d.Codename, err.Error())
		}
	}

	return nil
}

func (p *SurvivorParams) validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"search.time_base", p.Search.TimeBase},
		{"incubate.time_base", p.Incubate.TimeBase},
		{"incubate.min_time", p.Incubate.MinTime},
		{"carve.time_per_pumpkin", p.Carve.TimePerPumpkin},
		{"wax_and_wick.time_base", p.WaxAndWick.TimeBase},
		{"ignite.time_base", p.Ignite.TimeBase},
		{"altar.per_lantern_charge", p.Altar.PerLanternCharge},
		{"altar.max_charge", p.Altar.MaxCharge},
		{"altar.channel_time_base", p.Altar.ChannelTimeBase},
		{"altar.escape_door_time", p.Altar.EscapeDoorTime},
	}
	for _, f := range positive {
		if f.value <= 0 {
			return apperr.InvalidDefinitionf("survivor_params.%s must be positive", f.name)
		}
	}

	if p.MinActionTime < 0 {
		return apperr.InvalidDefinitionf("survivor_params.min_action_time cannot be negative")
	}
	if p.Incubate.CoopBonusPerPlayer < 0 {
		return apperr.InvalidDefinitionf("survivor_params.incubate.coop_bonus_per_player cannot be negative")
	}
	if p.Altar.MaxCharge < p.Altar.PerLanternCharge {
		return apperr.InvalidDefinitionf("survivor_params.altar.max_charge is below per_lantern_charge")
	}

	probabilities := map[string]float64{
		"search.reveal_chance":    p.Search.RevealChance,
		"carve.success_rate_base": p.Carve.SuccessRateBase,
	}
	if len(p.Search.DropRates) == 0 {
		return apperr.InvalidDefinitionf("survivor_params.search.drop_rates is required")
	}
	for item, rate := range p.Search.DropRates {
		probabilities["search.drop_rates."+item] = rate
	}

	names := make([]string, 0, len(probabilities))
	for name := range probabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := probabilities[name]; v < 0 || v > 1 {
			return apperr.InvalidDefinitionf("survivor_params.%s must be within [0, 1], got %v", name, v)
		}
	}

	return nil
}

func isKnownObjective(o Objective) bool {
	for _, k := range KnownObjectives {
		if k == o {
			return true
		}
	}
	return false
}
