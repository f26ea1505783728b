package survivor

import (
	"math"
	"time"

	"github.com/KirkDiggler/lanternfall/internal/effects"
	"github.com/KirkDiggler/lanternfall/internal/events"
)

// AddBuff activates a buff. A positive duration schedules its expiry; see
// effects.Registry.Add for re-add rules.
func (r *Runtime) AddBuff(id string, duration time.Duration) {
	r.effects.Add(effects.KindBuff, id, duration)
}

// RemoveBuff is idempotent
func (r *Runtime) RemoveBuff(id string) {
	r.effects.Remove(effects.KindBuff, id)
}

// AddDebuff activates a debuff
func (r *Runtime) AddDebuff(id string, duration time.Duration) {
	r.effects.Add(effects.KindDebuff, id, duration)
}

// RemoveDebuff is idempotent
func (r *Runtime) RemoveDebuff(id string) {
	r.effects.Remove(effects.KindDebuff, id)
}

// ClearAllDebuffs empties the debuff set immediately
func (r *Runtime) ClearAllDebuffs() {
	r.effects.Clear(effects.KindDebuff)
}

func (r *Runtime) HasBuff(id string) bool   { return r.effects.Has(effects.KindBuff, id) }
func (r *Runtime) HasDebuff(id string) bool { return r.effects.Has(effects.KindDebuff, id) }
func (r *Runtime) Buffs() []string          { return r.effects.IDs(effects.KindBuff) }
func (r *Runtime) Debuffs() []string        { return r.effects.IDs(effects.KindDebuff) }

// UseAbility activates a loadout ability. It fails when the id is not in the
// loadout, the runtime is downed or the ability is cooling down. On success
// the ability id becomes a buff for its duration, its instant heal applies
// and its cooldown starts.
func (r *Runtime) UseAbility(id string) bool {
	ability, ok := r.def.Ability(id)
	if !ok || r.IsDowned() || r.onCooldown(id) {
		return false
	}

	if ability.DurationSeconds > 0 {
		r.AddBuff(ability.ID, seconds(ability.DurationSeconds))
	}
	healed := r.Heal(ability.Effects.HealInstant)
	r.startCooldown(ability.ID, seconds(ability.CooldownSeconds))

	r.logger.Debug("ability used", "ability_id", ability.ID, "healed", healed)
	r.emit(events.EventTypeOnAbilityUsed, map[string]any{
		events.KeyAbilityID: ability.ID,
		events.KeyAmount:    healed,
	})
	return true
}

// CooldownRemaining returns whole seconds until id can be used again, rounded
// up. Zero means ready.
func (r *Runtime) CooldownRemaining(id string) int {
	remaining, ok := r.effects.Remaining(effects.KindCooldown, id)
	if !ok {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}

func (r *Runtime) onCooldown(id string) bool {
	return r.effects.Has(effects.KindCooldown, id)
}

func (r *Runtime) startCooldown(id string, d time.Duration) {
	if d <= 0 {
		return
	}
	r.effects.Add(effects.KindCooldown, id, d)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
