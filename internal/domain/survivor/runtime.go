// Package survivor holds the per-player runtime of a survivor role: health,
// timed effects, objective resolution and the role specializations that
// override the base formulas.
package survivor

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/lanternfall/internal/dice"
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/effects"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/uuid"
)

// injuredThreshold is the HP fraction below which a runtime is injured
const injuredThreshold = 0.5

// HealthState is the damage/heal state machine position
type HealthState string

const (
	HealthHealthy HealthState = "healthy"
	HealthInjured HealthState = "injured"
	HealthDowned  HealthState = "downed"
)

// Runtime is the mutable state of one player bound to one role. It has a
// single owner: every method runs to completion and none may be called
// concurrently with another on the same Runtime.
type Runtime struct {
	id       string
	playerID string
	def      *role.Definition
	spec     Specialization

	roller  dice.Roller
	emitter events.Emitter
	logger  *slog.Logger

	effects *effects.Registry

	maxHP     float64
	currentHP float64
	health    HealthState
	carrying  bool
}

// Option configures a Runtime
type Option func(*runtimeConfig)

type runtimeConfig struct {
	playerID string
	idGen    uuid.Generator
	roller   dice.Roller
	emitter  events.Emitter
	logger   *slog.Logger
	spec     Specialization
}

// WithPlayerID binds the runtime to a player
func WithPlayerID(playerID string) Option {
	return func(c *runtimeConfig) { c.playerID = playerID }
}

// WithIDGenerator sets the runtime id source
func WithIDGenerator(gen uuid.Generator) Option {
	return func(c *runtimeConfig) { c.idGen = gen }
}

// WithRoller sets the random source used by every resolver
func WithRoller(roller dice.Roller) Option {
	return func(c *runtimeConfig) { c.roller = roller }
}

// WithEmitter sets where role events go
func WithEmitter(emitter events.Emitter) Option {
	return func(c *runtimeConfig) { c.emitter = emitter }
}

// WithLogger sets the base logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *runtimeConfig) { c.logger = logger }
}

// WithSpecialization overrides the specialization chosen by codename
func WithSpecialization(spec Specialization) Option {
	return func(c *runtimeConfig) { c.spec = spec }
}

// NewRuntime binds a validated survivor definition to a fresh runtime at full
// health. An incomplete definition is rejected here, never mid-match.
func NewRuntime(def *role.Definition, opts ...Option) (*Runtime, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if def.Faction != role.FactionSurvivor {
		return nil, apperr.InvalidDefinitionf("role %s is not a survivor role", def.Codename).
			WithMeta("codename", string(def.Codename))
	}

	cfg := &runtimeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.spec == nil {
		spec, err := NewSpecialization(def.Codename)
		if err != nil {
			return nil, err
		}
		cfg.spec = spec
	}
	if cfg.idGen == nil {
		cfg.idGen = uuid.NewGoogleUUIDGenerator()
	}
	if cfg.roller == nil {
		cfg.roller = dice.NewRandomRoller()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	maxHP := def.BaseStats.MaxHP + def.PerkStats().MaxHP

	rt := &Runtime{
		id:        cfg.idGen.New(),
		playerID:  cfg.playerID,
		def:       def,
		spec:      cfg.spec,
		roller:    cfg.roller,
		emitter:   cfg.emitter,
		effects:   effects.NewRegistry(),
		maxHP:     maxHP,
		currentHP: maxHP,
		health:    HealthHealthy,
	}
	rt.logger = cfg.logger.With(
		"runtime_id", rt.id,
		"player_id", rt.playerID,
		"codename", def.Codename,
	)

	return rt, nil
}

// ID returns the runtime instance id
func (r *Runtime) ID() string { return r.id }

// PlayerID returns the bound player
func (r *Runtime) PlayerID() string { return r.playerID }

// Definition returns the shared role definition
func (r *Runtime) Definition() *role.Definition { return r.def }

// Specialization returns the role's override strategy
func (r *Runtime) Specialization() Specialization { return r.spec }

// Now returns the simulation time last passed to Advance
func (r *Runtime) Now() time.Duration { return r.effects.Now() }

func (r *Runtime) CurrentHP() float64  { return r.currentHP }
func (r *Runtime) MaxHP() float64      { return r.maxHP }
func (r *Runtime) Health() HealthState { return r.health }
func (r *Runtime) IsInjured() bool     { return r.health == HealthInjured }
func (r *Runtime) IsDowned() bool      { return r.health == HealthDowned }

// Advance moves the runtime's simulation clock and expires timed buffs,
// debuffs and cooldowns that came due.
func (r *Runtime) Advance(now time.Duration) []effects.Expiry {
	expired := r.effects.Advance(now)
	for _, e := range expired {
		if e.Kind == effects.KindCooldown {
			continue
		}
		r.logger.Debug("effect expired", "effect_id", e.ID, "kind", e.Kind.String())
		r.emit(events.EventTypeOnBuffExpired, map[string]any{
			events.KeyEffectID: e.ID,
			events.KeyKind:     e.Kind.String(),
		})
	}
	return expired
}

// Reset restores full health and clears every flag, effect and cooldown.
// It is the revive/reassignment entry point and is idempotent.
func (r *Runtime) Reset() {
	r.currentHP = r.maxHP
	r.health = HealthHealthy
	r.carrying = false
	r.effects.ClearAll()
	r.spec.Reset(r)
	r.logger.Debug("runtime reset")
}

// check consumes exactly one draw
func (r *Runtime) check(chance float64) *dice.CheckResult {
	return dice.Check(r.roller, chance)
}

// emit publishes a role event. Listener errors are logged and never change a
// resolver's result.
func (r *Runtime) emit(eventType events.EventType, payload map[string]any) {
	if r.emitter == nil {
		return
	}
	event := &events.RoleEvent{
		Type:      eventType,
		RuntimeID: r.id,
		PlayerID:  r.playerID,
		Codename:  r.def.Codename,
		At:        r.effects.Now(),
		Payload:   payload,
	}
	if err := r.emitter.Emit(event); err != nil {
		r.logger.Warn("dropping event listener error", "event", eventType, "error", err)
	}
}
