package survivor

import (
	"time"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
)

// Status is a read-only snapshot of a runtime for clients and storage
type Status struct {
	RuntimeID         string        `json:"runtime_id"`
	PlayerID          string        `json:"player_id,omitempty"`
	Codename          role.Codename `json:"codename"`
	DisplayName       string        `json:"display_name"`
	CurrentHP         float64       `json:"current_hp"`
	MaxHP             float64       `json:"max_hp"`
	Health            HealthState   `json:"health"`
	IsInjured         bool          `json:"is_injured"`
	IsDowned          bool          `json:"is_downed"`
	IsCarryingLantern bool          `json:"is_carrying_lantern"`
	Buffs             []string      `json:"buffs"`
	Debuffs           []string      `json:"debuffs"`
	MoveSpeed         float64       `json:"move_speed"`
	VisionRadius      float64       `json:"vision_radius"`
	Signature         Signature     `json:"signature"`
	At                time.Duration `json:"at"`
}

// GetStatus captures the runtime's current state. Buff and debuff lists are
// sorted copies.
func (r *Runtime) GetStatus() *Status {
	return &Status{
		RuntimeID:         r.id,
		PlayerID:          r.playerID,
		Codename:          r.def.Codename,
		DisplayName:       r.def.DisplayName,
		CurrentHP:         r.currentHP,
		MaxHP:             r.maxHP,
		Health:            r.health,
		IsInjured:         r.IsInjured(),
		IsDowned:          r.IsDowned(),
		IsCarryingLantern: r.carrying,
		Buffs:             r.Buffs(),
		Debuffs:           r.Debuffs(),
		MoveSpeed:         r.MoveSpeed(),
		VisionRadius:      r.VisionRadius(),
		Signature:         r.Signature(),
		At:                r.Now(),
	}
}
