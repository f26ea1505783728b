package events

// Event type constants
const (
	// Health transitions
	EventTypeOnDown        EventType = "on_down"
	EventTypeOnInjured     EventType = "on_injured"
	EventTypeOnRecovered   EventType = "on_recovered"
	EventTypeOnDamageTaken EventType = "on_damage_taken"
	EventTypeOnDodged      EventType = "on_dodged"

	// Objective outcomes
	EventTypeOnRevealed     EventType = "on_revealed"
	EventTypeOnQTEFailed    EventType = "on_qte_failed"
	EventTypeOnAltarInstant EventType = "on_altar_instant"

	// Loadout and timers
	EventTypeOnCleanse     EventType = "on_cleanse"
	EventTypeOnAbilityUsed EventType = "on_ability_used"
	EventTypeOnBuffExpired EventType = "on_buff_expired"
)

// Payload keys
const (
	KeyAmount    = "amount"
	KeyDamage    = "damage_type"
	KeyItemType  = "item_type"
	KeyAbilityID = "ability_id"
	KeyEffectID  = "effect_id"
	KeyKind      = "kind"
	KeyCharge    = "charge"
	KeyChance    = "chance"
)

// Priority levels for listener order
const (
	PriorityGameplay  = 100 // Match rules reacting to transitions
	PriorityBroadcast = 300 // Forwarding to clients
	PriorityAudit     = 500 // Logging, metrics, snapshots
)
