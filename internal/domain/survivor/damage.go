package survivor

import (
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

// TakeDamage runs incoming damage through resistance and the specialization's
// before-damage hook, then updates HP and the health state. It returns the HP
// actually removed. A downed runtime takes nothing, and a hit fully absorbed
// by resistance never reaches the hook.
func (r *Runtime) TakeDamage(amount float64, damageType modifiers.DamageType) float64 {
	if r.IsDowned() || amount <= 0 {
		return 0
	}

	resist := r.resistance(damageType)
	effective := amount * (1 - resist)
	if effective <= 0 {
		return 0
	}

	effective = r.spec.BeforeDamage(r, effective, damageType)
	if effective <= 0 {
		return 0
	}

	applied := effective
	if applied > r.currentHP {
		applied = r.currentHP
	}
	r.currentHP -= applied

	r.emit(events.EventTypeOnDamageTaken, map[string]any{
		events.KeyAmount: applied,
		events.KeyDamage: string(damageType),
	})

	switch {
	case r.currentHP <= 0:
		r.currentHP = 0
		r.transition(HealthDowned, events.EventTypeOnDown)
	case r.health == HealthHealthy && r.currentHP < r.maxHP*injuredThreshold:
		r.transition(HealthInjured, events.EventTypeOnInjured)
	}

	return applied
}

// Heal restores HP up to max and returns the amount actually healed.
// A downed runtime cannot be healed; only Reset revives.
func (r *Runtime) Heal(amount float64) float64 {
	if r.IsDowned() || amount <= 0 {
		return 0
	}

	healed := amount
	if missing := r.maxHP - r.currentHP; healed > missing {
		healed = missing
	}
	r.currentHP += healed

	if r.health == HealthInjured && r.currentHP >= r.maxHP*injuredThreshold {
		r.transition(HealthHealthy, events.EventTypeOnRecovered)
	}

	return healed
}

// resistance is base plus perk plus active ability resistance, clamped
func (r *Runtime) resistance(damageType modifiers.DamageType) float64 {
	return r.def.BaseStats.Add(r.bonusStats()).Resist(damageType)
}

func (r *Runtime) transition(to HealthState, eventType events.EventType) {
	from := r.health
	r.health = to
	r.logger.Debug("health transition",
		"from", from, "to", to, "hp", r.currentHP, "max_hp", r.maxHP)
	r.emit(eventType, map[string]any{events.KeyAmount: r.currentHP})
}
