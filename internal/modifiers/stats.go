package modifiers

// DamageType names an incoming damage channel for resistances
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageSpirit   DamageType = "spirit"
	DamageFire     DamageType = "fire"
	DamageFear     DamageType = "fear"
)

// ControlType names a crowd-control channel for resistances
type ControlType string

const (
	ControlStun    ControlType = "stun"
	ControlSlow    ControlType = "slow"
	ControlBind    ControlType = "bind"
	ControlBlind   ControlType = "blind"
	ControlSilence ControlType = "silence"
)

// StatBlock holds optional numeric stat contributions. An absent field is a
// zero contribution, never an override. In a role's base block MoveSpeed and
// VisionRadius are absolute values; in perks, ability effects and hooks they
// are ratios. NoiseMultiplier and LightSignature are always ratios and MaxHP
// is always flat.
type StatBlock struct {
	MaxHP           float64                 `yaml:"max_hp,omitempty" json:"max_hp,omitempty"`
	MoveSpeed       float64                 `yaml:"move_speed,omitempty" json:"move_speed,omitempty"`
	VisionRadius    float64                 `yaml:"vision_radius,omitempty" json:"vision_radius,omitempty"`
	NoiseMultiplier float64                 `yaml:"noise_multiplier,omitempty" json:"noise_multiplier,omitempty"`
	LightSignature  float64                 `yaml:"light_signature,omitempty" json:"light_signature,omitempty"`
	FearResist      float64                 `yaml:"fear_resist,omitempty" json:"fear_resist,omitempty"`
	DamageResist    map[DamageType]float64  `yaml:"damage_resist,omitempty" json:"damage_resist,omitempty"`
	ControlResist   map[ControlType]float64 `yaml:"control_resist,omitempty" json:"control_resist,omitempty"`
}

// Add returns the field-wise sum of two blocks. Neither input is mutated.
func (s StatBlock) Add(o StatBlock) StatBlock {
	return StatBlock{
		MaxHP:           s.MaxHP + o.MaxHP,
		MoveSpeed:       s.MoveSpeed + o.MoveSpeed,
		VisionRadius:    s.VisionRadius + o.VisionRadius,
		NoiseMultiplier: s.NoiseMultiplier + o.NoiseMultiplier,
		LightSignature:  s.LightSignature + o.LightSignature,
		FearResist:      s.FearResist + o.FearResist,
		DamageResist:    sumKeyed(s.DamageResist, o.DamageResist),
		ControlResist:   sumKeyed(s.ControlResist, o.ControlResist),
	}
}

// SumStats folds any number of blocks into one
func SumStats(blocks ...StatBlock) StatBlock {
	var total StatBlock
	for _, b := range blocks {
		total = total.Add(b)
	}
	return total
}

// Resist returns the damage resistance for a type clamped to [0, 1]
func (s StatBlock) Resist(damageType DamageType) float64 {
	if damageType == DamageFear {
		return Clamp01(s.DamageResist[damageType] + s.FearResist)
	}
	return Clamp01(s.DamageResist[damageType])
}

// IsZero reports whether the block contributes nothing
func (s StatBlock) IsZero() bool {
	return s.MaxHP == 0 && s.MoveSpeed == 0 && s.VisionRadius == 0 &&
		s.NoiseMultiplier == 0 && s.LightSignature == 0 && s.FearResist == 0 &&
		len(s.DamageResist) == 0 && len(s.ControlResist) == 0
}

func sumKeyed[K comparable](a, b map[K]float64) map[K]float64 {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[K]float64, len(a)+len(b))
	for k, v := range a {
		out[k] += v
	}
	for k, v := range b {
		out[k] += v
	}
	return out
}
