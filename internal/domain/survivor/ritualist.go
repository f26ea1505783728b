package survivor

import (
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

const (
	ritualistInstantChance = 0.06
	ritualistVisionBonus   = 0.20
	ritualistAltarRange    = 20.0
)

// Ritualist is the proximity/ritual specialist. Each altar charge has a small
// chance to complete the altar outright, and vision widens near the altar.
type Ritualist struct {
	nearAltar          bool
	instantCompletions int
}

// NewRitualist creates ritualist state
func NewRitualist() *Ritualist {
	return &Ritualist{}
}

func (r *Ritualist) Codename() role.Codename { return role.CodenameRitualist }

func (r *Ritualist) VisionRadius(rt *Runtime) float64 {
	if r.nearAltar {
		return rt.BaseVisionRadius(ritualistVisionBonus)
	}
	return rt.BaseVisionRadius()
}

func (r *Ritualist) MoveSpeed(rt *Runtime) float64 { return rt.BaseMoveSpeed() }

func (r *Ritualist) BeforeDamage(_ *Runtime, amount float64, _ modifiers.DamageType) float64 {
	return amount
}

// ChargeAltar draws for the instant completion first. A hit is flagged
// Instant and carries the role's max charge; a miss falls back to the
// ratio-adjusted charge.
func (r *Ritualist) ChargeAltar(rt *Runtime) AltarCharge {
	if rt.check(ritualistInstantChance).Success {
		r.instantCompletions++
		charge := rt.def.Survivor.Altar.MaxCharge
		rt.emit(events.EventTypeOnAltarInstant, map[string]any{events.KeyCharge: charge})
		return AltarCharge{Amount: charge, Instant: true}
	}
	return AltarCharge{Amount: rt.BaseChargeAltar()}
}

func (r *Ritualist) CompleteSearch(rt *Runtime, itemType string) SearchOutcome {
	return rt.BaseCompleteSearch(itemType)
}

func (r *Ritualist) PerformQTE(rt *Runtime) QTEOutcome { return rt.BasePerformQTE() }

// Reset clears the proximity flag. The completion counter is a match record
// and survives revives.
func (r *Ritualist) Reset(*Runtime) { r.nearAltar = false }

// UpdateAltarProximity sets the near-altar flag from positions and returns it
func (r *Ritualist) UpdateAltarProximity(player, altar Vec3) bool {
	r.nearAltar = player.Within(altar, ritualistAltarRange)
	return r.nearAltar
}

func (r *Ritualist) SetNearAltar(near bool)  { r.nearAltar = near }
func (r *Ritualist) IsNearAltar() bool       { return r.nearAltar }
func (r *Ritualist) InstantCompletions() int { return r.instantCompletions }
