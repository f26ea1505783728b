package survivor

import (
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

const (
	trackerVisionBonus    = 0.30
	trackerSpeedBonus     = 0.15
	trackerDetectionRange = 30.0
)

// Tracker is the tracking specialist: wider vision, faster while tracking or
// carrying, and a radius query for nearby players.
type Tracker struct {
	tracking bool
}

// NewTracker creates tracker state
func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Codename() role.Codename { return role.CodenameTracker }

func (t *Tracker) VisionRadius(rt *Runtime) float64 {
	return rt.BaseVisionRadius(trackerVisionBonus)
}

func (t *Tracker) MoveSpeed(rt *Runtime) float64 {
	if t.tracking || rt.IsCarryingLantern() {
		return rt.BaseMoveSpeed(trackerSpeedBonus)
	}
	return rt.BaseMoveSpeed()
}

func (t *Tracker) BeforeDamage(_ *Runtime, amount float64, _ modifiers.DamageType) float64 {
	return amount
}

func (t *Tracker) ChargeAltar(rt *Runtime) AltarCharge {
	return AltarCharge{Amount: rt.BaseChargeAltar()}
}

func (t *Tracker) CompleteSearch(rt *Runtime, itemType string) SearchOutcome {
	return rt.BaseCompleteSearch(itemType)
}

func (t *Tracker) PerformQTE(rt *Runtime) QTEOutcome { return rt.BasePerformQTE() }

func (t *Tracker) Reset(*Runtime) { t.tracking = false }

func (t *Tracker) StartTracking()   { t.tracking = true }
func (t *Tracker) StopTracking()    { t.tracking = false }
func (t *Tracker) IsTracking() bool { return t.tracking }

// Detect returns the indices of candidates within detection range of origin,
// in input order
func (t *Tracker) Detect(origin Vec3, candidates []Vec3) []int {
	var found []int
	for i, c := range candidates {
		if origin.Within(c, trackerDetectionRange) {
			found = append(found, i)
		}
	}
	return found
}
