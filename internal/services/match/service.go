// Package match owns the state shared by every role runtime in one match:
// the simulation clock, the player registry, the altar and the event bus.
package match

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/lanternfall/internal/dice"
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/domain/survivor"
	"github.com/KirkDiggler/lanternfall/internal/effects"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/repositories/snapshots"
	"github.com/KirkDiggler/lanternfall/internal/uuid"
)

// DefaultAltarMaxCharge is used when the altar config leaves MaxCharge unset
const DefaultAltarMaxCharge = 100.0

// Catalog resolves role definitions by codename
type Catalog interface {
	Get(codename role.Codename) (*role.Definition, error)
}

// Service defines the match service interface
type Service interface {
	// MatchID identifies the match in snapshots and logs
	MatchID() string

	// Now returns the simulation time of the last tick
	Now() time.Duration

	// Bus exposes the match event bus for subscribers
	Bus() *events.Bus

	// AssignRole binds a player to a role, replacing any previous binding
	AssignRole(ctx context.Context, playerID string, codename role.Codename) (*survivor.Runtime, error)

	// Runtime returns the player's runtime
	Runtime(playerID string) (*survivor.Runtime, error)

	// Players lists bound player ids in sorted order
	Players() []string

	// ReleasePlayer drops the player's runtime and stored snapshot
	ReleasePlayer(ctx context.Context, playerID string) error

	// Tick advances every runtime to now and returns what expired
	Tick(now time.Duration) []*Expired

	// ChargeAltar adds one lantern charge from the player to the altar
	ChargeAltar(playerID string) (*AltarProgress, error)

	// Altar returns the current altar state
	Altar() AltarState

	// UpdatePositions feeds positions to position-aware roles and returns
	// the players now flagged near the altar
	UpdatePositions(positions map[string]survivor.Vec3) []string

	// Snapshot captures every runtime's status and stores it when a
	// repository is configured
	Snapshot(ctx context.Context) ([]*snapshots.Snapshot, error)
}

// AltarConfig places the match altar
type AltarConfig struct {
	Mode      survivor.AltarMode
	Position  survivor.Vec3
	MaxCharge float64
}

// AltarState is the altar at a point in time
type AltarState struct {
	Mode      survivor.AltarMode `json:"mode"`
	Position  survivor.Vec3      `json:"position"`
	Charge    float64            `json:"charge"`
	MaxCharge float64            `json:"max_charge"`
	Complete  bool               `json:"complete"`
}

// AltarProgress reports one charge attempt
type AltarProgress struct {
	PlayerID string
	Added    float64
	Charge   float64
	Complete bool
	// ChannelTime is how long the charge took for this runtime and altar mode
	ChannelTime time.Duration
}

// Expired is one effect that came due during a tick
type Expired struct {
	PlayerID string
	effects.Expiry
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	MatchID       string               // Optional, generated if empty
	Catalog       Catalog              // Required
	Bus           *events.Bus          // Optional, a fresh bus if nil
	RollerFactory dice.Factory         // Optional, global random source if nil
	UUIDGenerator uuid.Generator       // Optional, will use default if nil
	Repository    snapshots.Repository // Optional, snapshots are not stored if nil
	TimeProvider  snapshots.TimeProvider
	Logger        *slog.Logger
	Altar         AltarConfig
}

type service struct {
	mu sync.Mutex

	matchID       string
	catalog       Catalog
	bus           *events.Bus
	emitter       *deferredEmitter
	rollerFactory dice.Factory
	uuidGenerator uuid.Generator
	repository    snapshots.Repository
	timeProvider  snapshots.TimeProvider
	logger        *slog.Logger

	now      time.Duration
	runtimes map[string]*survivor.Runtime
	assigned int
	altar    AltarState
}

// NewService creates a new match service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Catalog == nil {
		panic("catalog is required")
	}

	svc := &service{
		catalog:       cfg.Catalog,
		bus:           cfg.Bus,
		rollerFactory: cfg.RollerFactory,
		uuidGenerator: cfg.UUIDGenerator,
		repository:    cfg.Repository,
		timeProvider:  cfg.TimeProvider,
		logger:        cfg.Logger,
		runtimes:      make(map[string]*survivor.Runtime),
	}

	if svc.bus == nil {
		svc.bus = events.NewBus()
	}
	if svc.rollerFactory == nil {
		svc.rollerFactory = dice.RandomFactory()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = snapshots.RealTimeProvider{}
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	svc.matchID = cfg.MatchID
	if svc.matchID == "" {
		svc.matchID = svc.uuidGenerator.New()
	}
	svc.logger = svc.logger.With("match_id", svc.matchID)
	svc.emitter = newDeferredEmitter(svc.bus, svc.logger)

	svc.altar = AltarState{
		Mode:      cfg.Altar.Mode,
		Position:  cfg.Altar.Position,
		MaxCharge: cfg.Altar.MaxCharge,
	}
	if svc.altar.Mode == "" {
		svc.altar.Mode = survivor.AltarModeExorcise
	}
	if svc.altar.MaxCharge <= 0 {
		svc.altar.MaxCharge = DefaultAltarMaxCharge
	}

	return svc
}

func (s *service) MatchID() string  { return s.matchID }
func (s *service) Bus() *events.Bus { return s.bus }

func (s *service) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AssignRole binds playerID to codename. Reassigning the same role revives
// the existing runtime in place; a different role replaces it.
func (s *service) AssignRole(_ context.Context, playerID string, codename role.Codename) (*survivor.Runtime, error) {
	if playerID == "" {
		return nil, apperr.InvalidArgument("player ID is required")
	}

	def, err := s.catalog.Get(codename)
	if err != nil {
		return nil, apperr.Wrapf(err, "assign %s to player %s", codename, playerID)
	}

	s.lock()
	defer s.unlock()

	if existing, ok := s.runtimes[playerID]; ok && existing.Definition().Codename == codename {
		existing.Reset()
		s.logger.Info("role reassigned", "player_id", playerID, "codename", codename)
		return existing, nil
	}

	rt, err := survivor.NewRuntime(def,
		survivor.WithPlayerID(playerID),
		survivor.WithIDGenerator(s.uuidGenerator),
		survivor.WithRoller(s.rollerFactory(s.assigned)),
		survivor.WithEmitter(s.emitter),
		survivor.WithLogger(s.logger),
	)
	if err != nil {
		return nil, apperr.Wrapf(err, "assign %s to player %s", codename, playerID)
	}
	s.assigned++

	rt.Advance(s.now)
	s.runtimes[playerID] = rt

	s.logger.Info("role assigned",
		"player_id", playerID,
		"codename", codename,
		"runtime_id", rt.ID())

	return rt, nil
}

func (s *service) Runtime(playerID string) (*survivor.Runtime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(playerID)
}

func (s *service) Players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players()
}

// ReleasePlayer removes the runtime. A missing stored snapshot is not an error.
func (s *service) ReleasePlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	rt, err := s.lookup(playerID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	delete(s.runtimes, playerID)
	s.mu.Unlock()

	s.logger.Info("player released", "player_id", playerID, "runtime_id", rt.ID())

	if s.repository == nil {
		return nil
	}
	if err := s.repository.Delete(ctx, s.matchID, rt.ID()); err != nil && !apperr.IsNotFound(err) {
		return apperr.Wrapf(err, "delete snapshot for player %s", playerID)
	}
	return nil
}

// Tick moves the match clock. A now earlier than the current clock is ignored.
func (s *service) Tick(now time.Duration) []*Expired {
	s.lock()
	defer s.unlock()

	if now < s.now {
		return nil
	}
	s.now = now

	var expired []*Expired
	for _, playerID := range s.players() {
		for _, e := range s.runtimes[playerID].Advance(now) {
			expired = append(expired, &Expired{PlayerID: playerID, Expiry: e})
		}
	}
	return expired
}

// ChargeAltar resolves one charge for the player. A downed player adds
// nothing and a completed altar takes no more charge; neither draws. An
// instant completion fills the altar whatever its capacity.
func (s *service) ChargeAltar(playerID string) (*AltarProgress, error) {
	s.lock()
	defer s.unlock()

	rt, err := s.lookup(playerID)
	if err != nil {
		return nil, err
	}

	progress := &AltarProgress{PlayerID: playerID}
	if rt.IsDowned() || s.altar.Complete {
		progress.Charge = s.altar.Charge
		progress.Complete = s.altar.Complete
		return progress, nil
	}

	before := s.altar.Charge
	charge := rt.ResolveAltarCharge()
	if charge.Instant {
		s.altar.Charge = s.altar.MaxCharge
	} else {
		s.altar.Charge = min(s.altar.MaxCharge, before+charge.Amount)
	}
	s.altar.Complete = s.altar.Charge >= s.altar.MaxCharge

	progress.Added = s.altar.Charge - before
	progress.Charge = s.altar.Charge
	progress.Complete = s.altar.Complete
	progress.ChannelTime = rt.GetAltarChargeTime(s.altar.Mode)

	if s.altar.Complete {
		s.logger.Info("altar complete", "player_id", playerID, "charge", s.altar.Charge)
	}
	return progress, nil
}

func (s *service) Altar() AltarState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.altar
}

func (s *service) UpdatePositions(positions map[string]survivor.Vec3) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var near []string
	for _, playerID := range s.players() {
		pos, ok := positions[playerID]
		if !ok {
			continue
		}
		aware, ok := s.runtimes[playerID].Specialization().(survivor.AltarProximityAware)
		if !ok {
			continue
		}
		if aware.UpdateAltarProximity(pos, s.altar.Position) {
			near = append(near, playerID)
		}
	}
	return near
}

// Snapshot captures statuses under the lock and saves them concurrently
func (s *service) Snapshot(ctx context.Context) ([]*snapshots.Snapshot, error) {
	s.mu.Lock()
	savedAt := s.timeProvider.Now()
	list := make([]*snapshots.Snapshot, 0, len(s.runtimes))
	for _, playerID := range s.players() {
		list = append(list, &snapshots.Snapshot{
			MatchID: s.matchID,
			Status:  s.runtimes[playerID].GetStatus(),
			SavedAt: savedAt,
		})
	}
	s.mu.Unlock()

	if s.repository == nil {
		return list, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, snap := range list {
		g.Go(func() error {
			return s.repository.Save(gctx, snap)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Wrapf(err, "save snapshots for match %s", s.matchID)
	}

	s.logger.Debug("snapshots saved", "count", len(list))
	return list, nil
}

// lock takes s.mu and queues runtime events until unlock, which delivers
// them after the mutex is released
func (s *service) lock() {
	s.mu.Lock()
	s.emitter.hold()
}

func (s *service) unlock() {
	pending := s.emitter.release()
	s.mu.Unlock()
	s.emitter.deliver(pending)
}

// lookup requires s.mu
func (s *service) lookup(playerID string) (*survivor.Runtime, error) {
	rt, ok := s.runtimes[playerID]
	if !ok {
		return nil, apperr.NotFoundf("player %s has no role in match %s", playerID, s.matchID).
			WithMeta("player_id", playerID)
	}
	return rt, nil
}

// players requires s.mu
func (s *service) players() []string {
	ids := make([]string, 0, len(s.runtimes))
	for id := range s.runtimes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
