package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lanternfall/internal/dice"
	"github.com/KirkDiggler/lanternfall/internal/domain/role"
	"github.com/KirkDiggler/lanternfall/internal/domain/role/catalog"
	"github.com/KirkDiggler/lanternfall/internal/testutils"
)

func rosterDefinitions(t *testing.T) []*role.Definition {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	defs := make([]*role.Definition, 0, cat.Len())
	for _, codename := range cat.Codenames() {
		defs = append(defs, cat.MustGet(codename))
	}
	return defs
}

func TestSimulateRoles_Reproducible(t *testing.T) {
	defs := rosterDefinitions(t)

	first, err := simulateRoles(context.Background(), defs, 42, 2000)
	require.NoError(t, err)
	second, err := simulateRoles(context.Background(), defs, 42, 2000)
	require.NoError(t, err)

	require.Len(t, first, len(defs))
	for i := range first {
		assert.Equal(t, defs[i].Codename, first[i].Codename)
		assert.Equal(t, 2000, first[i].Trials)
		assert.Equal(t, first[i], second[i])
	}
}

func TestRunTrials_RoleSignatures(t *testing.T) {
	const trials = 20000

	tests := []struct {
		name     string
		codename role.Codename
		check    func(t *testing.T, stats *RoleStats)
	}{
		{
			name:     "vanguard dodges about one hit in five",
			codename: role.CodenameVanguard,
			check: func(t *testing.T, stats *RoleStats) {
				assert.InDelta(t, 0.20, stats.Rate(stats.Dodges), 0.02)
				assert.Zero(t, stats.AltarInstant)
			},
		},
		{
			name:     "ritualist completes the altar outright about 6% of the time",
			codename: role.CodenameRitualist,
			check: func(t *testing.T, stats *RoleStats) {
				assert.InDelta(t, 0.06, stats.Rate(stats.AltarInstant), 0.01)
				assert.Zero(t, stats.Dodges)
			},
		},
		{
			name:     "harvester never dodges or instant-charges",
			codename: role.CodenameHarvester,
			check: func(t *testing.T, stats *RoleStats) {
				assert.Zero(t, stats.Dodges)
				assert.Zero(t, stats.AltarInstant)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testutils.CreateTestDefinition(tt.codename)
			stats, err := runTrials(context.Background(), def, dice.NewSeededRoller(7), trials)
			require.NoError(t, err)

			assert.Equal(t, trials, stats.Trials)
			assert.Equal(t, trials*len(def.Survivor.Search.DropRates), stats.Searches)
			assert.InDelta(t, 0.8, stats.Rate(stats.CarveSuccess), 0.02)
			assert.InDelta(t, 0.35, stats.Rate(stats.SearchFound["pumpkin_seed"]), 0.02)
			tt.check(t, stats)
		})
	}
}

func TestRunTrials_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runTrials(ctx, testutils.CreateTestDefinition(role.CodenameTracker), dice.NewSeededRoller(1), 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoleStats_Rate(t *testing.T) {
	assert.Zero(t, (&RoleStats{}).Rate(5))
	assert.InDelta(t, 0.25, (&RoleStats{Trials: 8}).Rate(2), 1e-9)
}
