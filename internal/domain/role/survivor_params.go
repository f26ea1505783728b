package role

// SurvivorParams holds the per-objective base parameters for survivor roles.
// All times are seconds.
type SurvivorParams struct {
	// MinActionTime floors every resolved duration for this role
	MinActionTime float64        `yaml:"min_action_time"`
	Search        SearchParams   `yaml:"search"`
	Incubate      IncubateParams `yaml:"incubate"`
	Carve         CarveParams    `yaml:"carve"`
	WaxAndWick    WaxParams      `yaml:"wax_and_wick"`
	Ignite        IgniteParams   `yaml:"ignite"`
	Altar         AltarParams    `yaml:"altar"`
}

type SearchParams struct {
	TimeBase     float64            `yaml:"time_base"`
	DropRates    map[string]float64 `yaml:"drop_rates"`
	RevealChance float64            `yaml:"reveal_chance"`
}

type IncubateParams struct {
	TimeBase           float64 `yaml:"time_base"`
	MinTime            float64 `yaml:"min_time"`
	CoopBonusPerPlayer float64 `yaml:"coop_bonus_per_player"`
}

type CarveParams struct {
	TimePerPumpkin  float64 `yaml:"time_per_pumpkin"`
	SuccessRateBase float64 `yaml:"success_rate_base"`
}

type WaxParams struct {
	TimeBase float64 `yaml:"time_base"`
}

type IgniteParams struct {
	TimeBase float64 `yaml:"time_base"`
}

// AltarParams tunes lantern charging. EscapeDoorTime is the fixed channel time
// reported for the escape-door altar mode.
type AltarParams struct {
	PerLanternCharge float64 `yaml:"per_lantern_charge"`
	MaxCharge        float64 `yaml:"max_charge"`
	ChannelTimeBase  float64 `yaml:"channel_time_base"`
	EscapeDoorTime   float64 `yaml:"escape_door_time"`
}
