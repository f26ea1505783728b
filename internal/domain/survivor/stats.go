package survivor

import (
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/effects"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

// Signature is the effective detectability profile
type Signature struct {
	Noise float64 `json:"noise"`
	Light float64 `json:"light"`
}

// MoveSpeed returns the effective movement speed for the movement system
func (r *Runtime) MoveSpeed() float64 {
	return r.spec.MoveSpeed(r)
}

// VisionRadius returns the effective vision radius
func (r *Runtime) VisionRadius() float64 {
	return r.spec.VisionRadius(r)
}

// BaseMoveSpeed composes base speed with perk, ability and carry ratios plus
// any extra ratios a specialization adds. Every ratio is summed before the
// single multiply.
func (r *Runtime) BaseMoveSpeed(extra ...float64) float64 {
	ratios := append([]float64{r.bonusStats().MoveSpeed}, extra...)
	if r.carrying {
		ratios = append(ratios,
			r.def.Economy.CarryDebuff,
			r.def.Hook(role.ObjectiveCarryLantern).Stats.MoveSpeed,
		)
	}
	return modifiers.NonNegative(modifiers.Compose(r.def.BaseStats.MoveSpeed, ratios...))
}

// BaseVisionRadius composes base vision with perk and ability ratios plus any
// extra ratios a specialization adds
func (r *Runtime) BaseVisionRadius(extra ...float64) float64 {
	ratios := append([]float64{r.bonusStats().VisionRadius}, extra...)
	return modifiers.NonNegative(modifiers.Compose(r.def.BaseStats.VisionRadius, ratios...))
}

// Signature returns effective noise and light. Carrying a lantern adds the
// role's carry light bonus.
func (r *Runtime) Signature() Signature {
	stats := r.def.BaseStats.Add(r.bonusStats())

	lightRatios := []float64{stats.LightSignature}
	if r.carrying {
		lightRatios = append(lightRatios, r.def.Economy.CarryLightBonus)
	}

	return Signature{
		Noise: modifiers.NonNegative(modifiers.Compose(r.def.Signature.BaseNoise, stats.NoiseMultiplier)),
		Light: modifiers.NonNegative(modifiers.Compose(r.def.Signature.BaseLight, lightRatios...)),
	}
}

// NoiseTags lists the noise tags emitted by active abilities
func (r *Runtime) NoiseTags() []string {
	return r.activeAbilityEffects().NoiseTags
}

// RevealRadius is the largest reveal radius among active abilities
func (r *Runtime) RevealRadius() float64 {
	return r.activeAbilityEffects().RevealRadius
}

// bonusStats sums permanent perks and the stats of every loadout ability
// whose id is an active buff
func (r *Runtime) bonusStats() modifiers.StatBlock {
	return r.def.PerkStats().Add(r.activeAbilityEffects().Stats)
}

func (r *Runtime) activeAbilityEffects() modifiers.EffectBundle {
	var total modifiers.EffectBundle
	for _, ability := range r.def.Loadout.Abilities {
		if r.effects.Has(effects.KindBuff, ability.ID) {
			total = total.Add(ability.Effects)
		}
	}
	return total
}
