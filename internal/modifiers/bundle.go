package modifiers

// EffectBundle is a StatBlock plus objective ratios and side data.
// Ratio fields are relative (0.25 means +25%) and compose with Compose.
// CarveSuccess is an additive percentage applied to a probability, and
// HealInstant is a flat amount.
type EffectBundle struct {
	Stats StatBlock `yaml:"stats,omitempty" json:"stats,omitempty"`

	SearchTimeMult   float64 `yaml:"search_time_mult,omitempty" json:"search_time_mult,omitempty"`
	SearchDropMult   float64 `yaml:"search_drop_mult,omitempty" json:"search_drop_mult,omitempty"`
	IncubateTimeMult float64 `yaml:"incubate_time_mult,omitempty" json:"incubate_time_mult,omitempty"`
	CarveTimeMult    float64 `yaml:"carve_time_mult,omitempty" json:"carve_time_mult,omitempty"`
	CarveSuccess     float64 `yaml:"carve_success,omitempty" json:"carve_success,omitempty"`
	WaxTimeMult      float64 `yaml:"wax_time_mult,omitempty" json:"wax_time_mult,omitempty"`
	IgniteTimeMult   float64 `yaml:"ignite_time_mult,omitempty" json:"ignite_time_mult,omitempty"`
	AltarChargeRate  float64 `yaml:"altar_charge_rate,omitempty" json:"altar_charge_rate,omitempty"`

	HealInstant  float64  `yaml:"heal_instant,omitempty" json:"heal_instant,omitempty"`
	RevealRadius float64  `yaml:"reveal_radius,omitempty" json:"reveal_radius,omitempty"`
	NoiseTags    []string `yaml:"noise_tags,omitempty" json:"noise_tags,omitempty"`
}

// Add sums every numeric field. Reveal radius keeps the larger value and
// noise tags are concatenated in order.
func (e EffectBundle) Add(o EffectBundle) EffectBundle {
	out := EffectBundle{
		Stats:            e.Stats.Add(o.Stats),
		SearchTimeMult:   e.SearchTimeMult + o.SearchTimeMult,
		SearchDropMult:   e.SearchDropMult + o.SearchDropMult,
		IncubateTimeMult: e.IncubateTimeMult + o.IncubateTimeMult,
		CarveTimeMult:    e.CarveTimeMult + o.CarveTimeMult,
		CarveSuccess:     e.CarveSuccess + o.CarveSuccess,
		WaxTimeMult:      e.WaxTimeMult + o.WaxTimeMult,
		IgniteTimeMult:   e.IgniteTimeMult + o.IgniteTimeMult,
		AltarChargeRate:  e.AltarChargeRate + o.AltarChargeRate,
		HealInstant:      e.HealInstant + o.HealInstant,
		RevealRadius:     e.RevealRadius,
	}
	if o.RevealRadius > out.RevealRadius {
		out.RevealRadius = o.RevealRadius
	}
	if len(e.NoiseTags)+len(o.NoiseTags) > 0 {
		out.NoiseTags = append(append([]string{}, e.NoiseTags...), o.NoiseTags...)
	}
	return out
}

// ObjectiveHook extends a bundle with objective-specific extras.
// QTEBonus is optional: when set, QTE resolution spends a draw on it.
type ObjectiveHook struct {
	EffectBundle `yaml:",inline"`

	QTEBonus        *float64 `yaml:"qte_bonus,omitempty" json:"qte_bonus,omitempty"`
	BindWindowBonus float64  `yaml:"bind_window_bonus,omitempty" json:"bind_window_bonus,omitempty"`
}

// HasQTEBonus reports whether the hook exposes a QTE bonus
func (h ObjectiveHook) HasQTEBonus() bool {
	return h.QTEBonus != nil
}
