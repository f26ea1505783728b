package survivor

import (
	"time"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/effects"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

const (
	vanguardDodgeChance = 0.20
	vanguardSpeedBonus  = 0.20
	vanguardCleanseHeal = 25.0

	// SpeedBoostBuff is armed for SpeedBoostDuration by every hit that lands
	SpeedBoostBuff     = "speed_boost"
	SpeedBoostDuration = 10 * time.Second

	// CleanseCooldownID keys the cleanse cooldown in the effect registry
	CleanseCooldownID = "vanguard_cleanse"
	CleanseCooldown   = 100 * time.Second
)

// Vanguard is the combat-reflex specialist: it can dodge hits outright, gets
// faster after being hit and can cleanse its debuffs on a cooldown.
type Vanguard struct {
	cleanseUses int
}

// NewVanguard creates vanguard state
func NewVanguard() *Vanguard {
	return &Vanguard{}
}

func (v *Vanguard) Codename() role.Codename { return role.CodenameVanguard }

func (v *Vanguard) VisionRadius(rt *Runtime) float64 { return rt.BaseVisionRadius() }

func (v *Vanguard) MoveSpeed(rt *Runtime) float64 {
	if rt.HasBuff(SpeedBoostBuff) {
		return rt.BaseMoveSpeed(vanguardSpeedBonus)
	}
	return rt.BaseMoveSpeed()
}

// BeforeDamage draws once for a full dodge. A hit that lands arms the speed
// boost window.
func (v *Vanguard) BeforeDamage(rt *Runtime, amount float64, damageType modifiers.DamageType) float64 {
	if rt.check(vanguardDodgeChance).Success {
		rt.emit(events.EventTypeOnDodged, map[string]any{
			events.KeyAmount: amount,
			events.KeyDamage: string(damageType),
		})
		return 0
	}
	rt.AddBuff(SpeedBoostBuff, SpeedBoostDuration)
	return amount
}

func (v *Vanguard) ChargeAltar(rt *Runtime) AltarCharge {
	return AltarCharge{Amount: rt.BaseChargeAltar()}
}

func (v *Vanguard) CompleteSearch(rt *Runtime, itemType string) SearchOutcome {
	return rt.BaseCompleteSearch(itemType)
}

func (v *Vanguard) PerformQTE(rt *Runtime) QTEOutcome { return rt.BasePerformQTE() }

// Reset has nothing to clear; the speed boost and cleanse cooldown live in
// the runtime's registry
func (v *Vanguard) Reset(*Runtime) {}

// Cleanse clears every debuff and heals a fixed amount. It is unavailable
// while downed or cooling down.
func (v *Vanguard) Cleanse(rt *Runtime) bool {
	if rt.IsDowned() || rt.onCooldown(CleanseCooldownID) {
		return false
	}

	cleared := len(rt.Debuffs())
	rt.ClearAllDebuffs()
	healed := rt.Heal(vanguardCleanseHeal)
	rt.effects.Add(effects.KindCooldown, CleanseCooldownID, CleanseCooldown)
	v.cleanseUses++

	rt.logger.Debug("cleanse used", "cleared", cleared, "healed", healed, "uses", v.cleanseUses)
	rt.emit(events.EventTypeOnCleanse, map[string]any{events.KeyAmount: healed})
	return true
}

// CleanseCooldownRemaining returns whole seconds until Cleanse is ready
func (v *Vanguard) CleanseCooldownRemaining(rt *Runtime) int {
	return rt.CooldownRemaining(CleanseCooldownID)
}

// CleanseUses counts successful cleanses
func (v *Vanguard) CleanseUses() int { return v.cleanseUses }
