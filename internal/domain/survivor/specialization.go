package survivor

import (
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
)

// Specialization is the per-role strategy behind every overridable formula.
// Each role implements every method explicitly; a role that keeps a formula
// delegates to the matching Base method on the runtime.
type Specialization interface {
	Codename() role.Codename

	VisionRadius(rt *Runtime) float64
	MoveSpeed(rt *Runtime) float64

	// BeforeDamage receives post-resistance damage and returns what lands
	BeforeDamage(rt *Runtime, amount float64, damageType modifiers.DamageType) float64

	ChargeAltar(rt *Runtime) AltarCharge
	CompleteSearch(rt *Runtime, itemType string) SearchOutcome
	PerformQTE(rt *Runtime) QTEOutcome

	// Reset clears role-specific transient flags
	Reset(rt *Runtime)
}

// AltarProximityAware is implemented by roles whose formulas depend on how
// close the player stands to the altar
type AltarProximityAware interface {
	UpdateAltarProximity(player, altar Vec3) bool
}

// NewSpecialization returns fresh per-runtime state for a codename
func NewSpecialization(codename role.Codename) (Specialization, error) {
	switch codename {
	case role.CodenameHarvester:
		return NewHarvester(), nil
	case role.CodenameTracker:
		return NewTracker(), nil
	case role.CodenameRitualist:
		return NewRitualist(), nil
	case role.CodenameVanguard:
		return NewVanguard(), nil
	default:
		return nil, apperr.InvalidDefinitionf("no specialization for role %q", codename).
			WithMeta("codename", string(codename))
	}
}
