package survivor

import (
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

// Harvester is the search-and-growth specialist. Its drop, incubation and QTE
// bonuses live entirely in its hook table, so every formula is the base one.
type Harvester struct{}

// NewHarvester creates harvester state
func NewHarvester() *Harvester {
	return &Harvester{}
}

func (h *Harvester) Codename() role.Codename { return role.CodenameHarvester }

func (h *Harvester) VisionRadius(rt *Runtime) float64 { return rt.BaseVisionRadius() }

func (h *Harvester) MoveSpeed(rt *Runtime) float64 { return rt.BaseMoveSpeed() }

func (h *Harvester) BeforeDamage(_ *Runtime, amount float64, _ modifiers.DamageType) float64 {
	return amount
}

func (h *Harvester) ChargeAltar(rt *Runtime) AltarCharge {
	return AltarCharge{Amount: rt.BaseChargeAltar()}
}

func (h *Harvester) CompleteSearch(rt *Runtime, itemType string) SearchOutcome {
	return rt.BaseCompleteSearch(itemType)
}

// PerformQTE uses the base resolver; the incubate hook's qte_bonus is what
// makes the easy branch more likely
func (h *Harvester) PerformQTE(rt *Runtime) QTEOutcome { return rt.BasePerformQTE() }

func (h *Harvester) Reset(*Runtime) {}
