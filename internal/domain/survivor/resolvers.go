package survivor

import (
	"math"
	"time"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

const (
	// BaseQTEChance is the success chance of a default-difficulty QTE
	BaseQTEChance = 0.70
	// EasyQTEChance is the success chance once the easy branch is drawn
	EasyQTEChance = 0.90
)

// AltarMode selects how the altar is being worked
type AltarMode string

const (
	AltarModeExorcise   AltarMode = "exorcise"
	AltarModeEscapeDoor AltarMode = "escape_door"
)

// AltarCharge is one lantern's contribution. Instant means the altar it is
// applied to completes outright, whatever its capacity.
type AltarCharge struct {
	Amount  float64 `json:"amount"`
	Instant bool    `json:"instant"`
}

// SearchOutcome is the result of finishing a search
type SearchOutcome struct {
	ItemType string  `json:"item_type"`
	DropRate float64 `json:"drop_rate"`
	Found    bool    `json:"found"`
	Revealed bool    `json:"revealed"`
}

// QTEOutcome is the result of one QTE
type QTEOutcome struct {
	Easy    bool    `json:"easy"`
	Chance  float64 `json:"chance"`
	Success bool    `json:"success"`
}

// StartSearch returns how long searching a target takes
func (r *Runtime) StartSearch(targetID string) time.Duration {
	p := r.def.Survivor.Search
	hook := r.def.Hook(role.ObjectiveSearch)

	d := r.duration(modifiers.Compose(p.TimeBase, hook.SearchTimeMult))
	r.logger.Debug("search started", "target_id", targetID, "duration", d)
	return d
}

// CompleteSearch resolves a finished search through the specialization
func (r *Runtime) CompleteSearch(itemType string) SearchOutcome {
	return r.spec.CompleteSearch(r, itemType)
}

// BaseCompleteSearch draws once for the drop and once for exposure. An item
// type without a base drop rate can never drop but still spends its draw.
func (r *Runtime) BaseCompleteSearch(itemType string) SearchOutcome {
	p := r.def.Survivor.Search
	hook := r.def.Hook(role.ObjectiveSearch)

	dropRate := modifiers.Clamp01(modifiers.Compose(p.DropRates[itemType], hook.SearchDropMult))
	found := r.check(dropRate)
	revealed := r.check(p.RevealChance)

	if revealed.Success {
		r.emit(events.EventTypeOnRevealed, map[string]any{events.KeyItemType: itemType})
	}

	return SearchOutcome{
		ItemType: itemType,
		DropRate: dropRate,
		Found:    found.Success,
		Revealed: revealed.Success,
	}
}

// StartIncubate returns incubation time for a team of coopPlayers, the
// runtime included. Each extra player shortens the base time down to the
// minimum before the hook ratio applies.
func (r *Runtime) StartIncubate(coopPlayers int) time.Duration {
	if coopPlayers < 1 {
		coopPlayers = 1
	}
	p := r.def.Survivor.Incubate
	hook := r.def.Hook(role.ObjectiveIncubate)

	base := math.Max(p.MinTime, p.TimeBase-float64(coopPlayers-1)*p.CoopBonusPerPlayer)
	return r.duration(modifiers.Compose(base, hook.IncubateTimeMult))
}

// PerformQTE resolves one QTE through the specialization
func (r *Runtime) PerformQTE() QTEOutcome {
	return r.spec.PerformQTE(r)
}

// BasePerformQTE draws for the easy branch only when the incubate hook has a
// QTE bonus, then draws the outcome. Failure emits on_qte_failed so the
// objective system can roll progress back.
func (r *Runtime) BasePerformQTE() QTEOutcome {
	hook := r.def.Hook(role.ObjectiveIncubate)

	outcome := QTEOutcome{Chance: BaseQTEChance}
	if hook.HasQTEBonus() && r.check(*hook.QTEBonus).Success {
		outcome.Easy = true
		outcome.Chance = EasyQTEChance
	}
	outcome.Success = r.check(outcome.Chance).Success

	if !outcome.Success {
		r.emit(events.EventTypeOnQTEFailed, map[string]any{events.KeyChance: outcome.Chance})
	}
	return outcome
}

// CarvePumpkin draws once against the clamped carve success chance
func (r *Runtime) CarvePumpkin() bool {
	return r.check(r.CarveChance()).Success
}

// CarveChance is the success chance CarvePumpkin draws against
func (r *Runtime) CarveChance() float64 {
	hook := r.def.Hook(role.ObjectiveCarve)
	return modifiers.Clamp01(r.def.Survivor.Carve.SuccessRateBase + hook.CarveSuccess)
}

// GetCarveTime returns the time to carve one pumpkin
func (r *Runtime) GetCarveTime() time.Duration {
	hook := r.def.Hook(role.ObjectiveCarve)
	return r.duration(modifiers.Compose(r.def.Survivor.Carve.TimePerPumpkin, hook.CarveTimeMult))
}

// WaxAndWick returns the time to prepare a lantern
func (r *Runtime) WaxAndWick() time.Duration {
	hook := r.def.Hook(role.ObjectiveWaxAndWick)
	return r.duration(modifiers.Compose(r.def.Survivor.WaxAndWick.TimeBase, hook.WaxTimeMult))
}

// IgniteLantern returns the time to light a lantern
func (r *Runtime) IgniteLantern() time.Duration {
	hook := r.def.Hook(role.ObjectiveIgnite)
	return r.duration(modifiers.Compose(r.def.Survivor.Ignite.TimeBase, hook.IgniteTimeMult))
}

func (r *Runtime) StartCarryLantern()      { r.carrying = true }
func (r *Runtime) StopCarryLantern()       { r.carrying = false }
func (r *Runtime) IsCarryingLantern() bool { return r.carrying }

// GetCarrySpeedMultiplier is the factor carrying applies on its own
func (r *Runtime) GetCarrySpeedMultiplier() float64 {
	hook := r.def.Hook(role.ObjectiveCarryLantern)
	return 1 + modifiers.SumRatios(r.def.Economy.CarryDebuff, hook.Stats.MoveSpeed)
}

// ChargeAltar returns the charge one lantern adds, through the specialization
func (r *Runtime) ChargeAltar() float64 {
	return r.spec.ChargeAltar(r).Amount
}

// ResolveAltarCharge is ChargeAltar with the instant-completion flag kept, for
// callers applying the charge to an altar whose capacity differs from the
// role's own max charge
func (r *Runtime) ResolveAltarCharge() AltarCharge {
	return r.spec.ChargeAltar(r)
}

// BaseChargeAltar is the ratio-adjusted charge per lantern
func (r *Runtime) BaseChargeAltar() float64 {
	hook := r.def.Hook(role.ObjectiveAltar)
	return modifiers.Compose(r.def.Survivor.Altar.PerLanternCharge, hook.AltarChargeRate)
}

// GetAltarChargeTime returns the channel time for the altar. A faster charge
// rate shortens exorcise channels; escape doors take a fixed time.
func (r *Runtime) GetAltarChargeTime(mode AltarMode) time.Duration {
	p := r.def.Survivor.Altar
	if mode == AltarModeEscapeDoor {
		return r.duration(p.EscapeDoorTime)
	}
	hook := r.def.Hook(role.ObjectiveAltar)
	return r.duration(modifiers.Inverse(p.ChannelTimeBase, hook.AltarChargeRate))
}

// duration floors a composed time at the role's minimum action time
func (r *Runtime) duration(sec float64) time.Duration {
	return modifiers.Seconds(sec, r.def.Survivor.MinActionTime)
}
