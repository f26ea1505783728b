package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lanternfall/internal/config"
	"github.com/KirkDiggler/lanternfall/internal/dice"
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/domain/role/catalog"
	"github.com/KirkDiggler/lanternfall/internal/domain/survivor"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/repositories/snapshots"
	"github.com/KirkDiggler/lanternfall/internal/services/match"
)

// maxMatchTicks bounds the demo match when no altar completes
const maxMatchTicks = 10000

func main() {
	if err := run(); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Debug("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(cfg.Roles.File)
	if err != nil {
		return err
	}
	logger.Info("roles loaded", "count", cat.Len(), "source", catalogSource(cfg.Roles.File))

	defs := make([]*role.Definition, 0, cat.Len())
	for _, codename := range cat.Codenames() {
		defs = append(defs, cat.MustGet(codename))
	}

	start := time.Now()
	results, err := simulateRoles(ctx, defs, cfg.Simulation.Seed, cfg.Simulation.Trials)
	if err != nil {
		return err
	}
	for _, stats := range results {
		logger.Info("role trials", "codename", stats.Codename, "stats", stats)
	}
	logger.Info("trials complete",
		"seed", cfg.Simulation.Seed,
		"trials", cfg.Simulation.Trials,
		"elapsed", time.Since(start))

	repo, closeRepo := openSnapshotRepository(ctx, cfg.Redis, logger)
	defer closeRepo()

	return runMatch(ctx, cat, repo, cfg, logger)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Load()
}

func catalogSource(path string) string {
	if path != "" {
		return path
	}
	return "embedded"
}

// openSnapshotRepository prefers Redis and falls back to memory when the URL
// is missing or unreachable
func openSnapshotRepository(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (snapshots.Repository, func()) {
	noop := func() {}
	inMemory := snapshots.NewInMemory(snapshots.RealTimeProvider{}, cfg.SnapshotTTL)

	if cfg.URL == "" {
		logger.Info("no REDIS_URL found, using in-memory snapshots")
		return inMemory, noop
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		logger.Warn("failed to parse Redis URL, falling back to in-memory snapshots", "error", err)
		return inMemory, noop
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("failed to connect to Redis, falling back to in-memory snapshots", "error", err)
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("error closing Redis connection", "error", closeErr)
		}
		return inMemory, noop
	}

	logger.Info("using Redis for snapshots", "addr", opts.Addr)
	return snapshots.NewRedis(client, snapshots.RealTimeProvider{}, cfg.SnapshotTTL), func() {
		if err := client.Close(); err != nil {
			logger.Warn("error closing Redis connection", "error", err)
		}
	}
}

// runMatch plays one match with every role seated: the ritualist stands at
// the altar and every survivor charges once per second of simulation time
// until the altar completes.
func runMatch(ctx context.Context, cat *catalog.Catalog, repo snapshots.Repository, cfg *config.Config, logger *slog.Logger) error {
	bus := events.NewBus()
	svc := match.NewService(&match.ServiceConfig{
		Catalog:       cat,
		Bus:           bus,
		RollerFactory: dice.SeededFactory(cfg.Simulation.Seed),
		Repository:    repo,
		Logger:        logger,
		Altar:         match.AltarConfig{Mode: survivor.AltarModeExorcise},
	})

	audit := events.NewRecorder("match_audit")
	bus.SubscribeAll(audit,
		events.EventTypeOnAltarInstant,
		events.EventTypeOnBuffExpired,
		events.EventTypeOnDodged,
	)

	positions := map[string]survivor.Vec3{}
	for i, codename := range cat.Codenames() {
		playerID := "player-" + string(codename)
		if _, err := svc.AssignRole(ctx, playerID, codename); err != nil {
			return err
		}
		positions[playerID] = survivor.Vec3{X: float64(i) * 15}
	}
	near := svc.UpdatePositions(positions)
	logger.Debug("altar proximity", "near", near)

	tick := cfg.Simulation.TickInterval
	ticksPerCharge := max(int(time.Second/tick), 1)

	var now time.Duration
	for n := 1; n <= maxMatchTicks && !svc.Altar().Complete; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		now += tick
		svc.Tick(now)
		if n%ticksPerCharge != 0 {
			continue
		}

		for _, playerID := range svc.Players() {
			progress, err := svc.ChargeAltar(playerID)
			if err != nil {
				return err
			}
			if progress.Complete {
				break
			}
		}
	}

	altar := svc.Altar()
	logger.Info("match finished",
		"match_id", svc.MatchID(),
		"sim_time", svc.Now(),
		"altar_charge", altar.Charge,
		"altar_complete", altar.Complete,
		"instant_completions", audit.Count(events.EventTypeOnAltarInstant))

	saved, err := svc.Snapshot(ctx)
	if err != nil {
		return err
	}
	for _, snap := range saved {
		logger.Info("snapshot saved",
			"runtime_id", snap.Status.RuntimeID,
			"codename", snap.Status.Codename,
			"health", snap.Status.Health,
			"move_speed", snap.Status.MoveSpeed,
			"vision_radius", snap.Status.VisionRadius)
	}

	stored, err := repo.ListByMatch(ctx, svc.MatchID())
	if err != nil {
		return err
	}
	logger.Info("snapshots stored", "count", len(stored))
	return nil
}
