package main

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/lanternfall/internal/dice"
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/domain/survivor"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
	"github.com/KirkDiggler/lanternfall/internal/events"
	"github.com/KirkDiggler/lanternfall/internal/modifiers"
	"github.com/KirkDiggler/lanternfall/internal/uuid"
)

// ctxCheckEvery is how many trials run between cancellation checks
const ctxCheckEvery = 500

// RoleStats aggregates one role's Monte Carlo trials
type RoleStats struct {
	Codename role.Codename
	Trials   int

	Searches     int
	SearchFound  map[string]int
	Reveals      int
	QTEEasy      int
	QTESuccess   int
	CarveSuccess int
	AltarCharge  float64
	AltarInstant int
	Dodges       int

	SearchTime   time.Duration
	IncubateTime time.Duration
	CarveTime    time.Duration
	AltarTime    time.Duration
	MoveSpeed    float64
	VisionRadius float64
}

// Rate divides a count by the trial count
func (s *RoleStats) Rate(count int) float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(count) / float64(s.Trials)
}

// LogValue renders the stats as one structured log group
func (s *RoleStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("trials", s.Trials),
		slog.Float64("reveal_rate", float64(s.Reveals)/float64(max(s.Searches, 1))),
		slog.Float64("qte_easy_rate", s.Rate(s.QTEEasy)),
		slog.Float64("qte_success_rate", s.Rate(s.QTESuccess)),
		slog.Float64("carve_success_rate", s.Rate(s.CarveSuccess)),
		slog.Float64("mean_altar_charge", s.AltarCharge/float64(max(s.Trials, 1))),
		slog.Float64("altar_instant_rate", s.Rate(s.AltarInstant)),
		slog.Float64("dodge_rate", s.Rate(s.Dodges)),
		slog.Duration("search_time", s.SearchTime),
		slog.Duration("incubate_time", s.IncubateTime),
		slog.Duration("carve_time", s.CarveTime),
		slog.Duration("altar_time", s.AltarTime),
		slog.Float64("move_speed", s.MoveSpeed),
		slog.Float64("vision_radius", s.VisionRadius),
	}
	for _, item := range sortedKeys(s.SearchFound) {
		attrs = append(attrs, slog.Float64("drop_rate_"+item, s.Rate(s.SearchFound[item])))
	}
	return slog.GroupValue(attrs...)
}

// simulateRoles runs trials for every definition concurrently. Each role gets
// its own runtime and seeded roller so results are reproducible per seed.
func simulateRoles(ctx context.Context, defs []*role.Definition, seed int64, trials int) ([]*RoleStats, error) {
	factory := dice.SeededFactory(seed)
	results := make([]*RoleStats, len(defs))

	g, gctx := errgroup.WithContext(ctx)
	for i, def := range defs {
		g.Go(func() error {
			stats, err := runTrials(gctx, def, factory(i), trials)
			if err != nil {
				return apperr.Wrapf(err, "simulate %s", def.Codename)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runTrials resolves every objective once per trial. The runtime is reset
// after each trial so damage and buffs never carry over.
func runTrials(ctx context.Context, def *role.Definition, roller dice.Roller, trials int) (*RoleStats, error) {
	counts := map[events.EventType]int{}
	bus := events.NewBus()
	bus.SubscribeAll(&events.ListenerFunc{
		Name:  "trial_counter",
		Order: events.PriorityAudit,
		Fn: func(e events.Event) error {
			counts[e.GetType()]++
			return nil
		},
	}, events.EventTypeOnRevealed, events.EventTypeOnAltarInstant, events.EventTypeOnDodged)

	rt, err := survivor.NewRuntime(def,
		survivor.WithPlayerID("trial-"+string(def.Codename)),
		survivor.WithIDGenerator(uuid.NewSequenceGenerator(string(def.Codename))),
		survivor.WithRoller(roller),
		survivor.WithEmitter(bus),
		survivor.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		return nil, err
	}

	items := sortedKeys(def.Survivor.Search.DropRates)
	stats := &RoleStats{
		Codename:     def.Codename,
		SearchFound:  make(map[string]int, len(items)),
		SearchTime:   rt.StartSearch("trial"),
		IncubateTime: rt.StartIncubate(1),
		CarveTime:    rt.GetCarveTime(),
		AltarTime:    rt.GetAltarChargeTime(survivor.AltarModeExorcise),
		MoveSpeed:    rt.MoveSpeed(),
		VisionRadius: rt.VisionRadius(),
	}

	for n := 0; n < trials; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		for _, item := range items {
			stats.Searches++
			if rt.CompleteSearch(item).Found {
				stats.SearchFound[item]++
			}
		}

		qte := rt.PerformQTE()
		if qte.Easy {
			stats.QTEEasy++
		}
		if qte.Success {
			stats.QTESuccess++
		}

		if rt.CarvePumpkin() {
			stats.CarveSuccess++
		}

		stats.AltarCharge += rt.ChargeAltar()
		rt.TakeDamage(1, modifiers.DamagePhysical)
		rt.Reset()
		stats.Trials++
	}

	stats.Reveals = counts[events.EventTypeOnRevealed]
	stats.AltarInstant = counts[events.EventTypeOnAltarInstant]
	stats.Dodges = counts[events.EventTypeOnDodged]
	return stats, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
