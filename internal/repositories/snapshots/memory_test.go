package snapshots_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
	"github.com/KirkDiggler/lanternfall/internal/repositories/snapshots"
	"github.com/KirkDiggler/lanternfall/internal/repositories/snapshots/mocks"
)

func TestInMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockTimeProvider(ctrl)

	start := time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC)
	current := start
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return current }).AnyTimes()

	repo := snapshots.NewInMemory(clock, time.Hour)

	require.NoError(t, repo.Save(ctx, &snapshots.Snapshot{MatchID: "match-1", Status: testStatus("rt-2")}))
	require.NoError(t, repo.Save(ctx, &snapshots.Snapshot{MatchID: "match-1", Status: testStatus("rt-1")}))

	got, err := repo.Get(ctx, "match-1", "rt-1")
	require.NoError(t, err)
	assert.Equal(t, testStatus("rt-1"), got.Status)
	assert.Equal(t, start, got.SavedAt)

	got.Status.Buffs[0] = "mutated"
	again, err := repo.Get(ctx, "match-1", "rt-1")
	require.NoError(t, err)
	assert.Equal(t, testStatus("rt-1").Buffs, again.Status.Buffs, "callers get copies")

	list, err := repo.ListByMatch(ctx, "match-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "rt-1", list[0].Status.RuntimeID)

	require.NoError(t, repo.Delete(ctx, "match-1", "rt-2"))
	assert.True(t, apperr.IsNotFound(repo.Delete(ctx, "match-1", "rt-2")))

	current = start.Add(time.Hour)
	_, err = repo.Get(ctx, "match-1", "rt-1")
	assert.True(t, apperr.IsNotFound(err), "expired after ttl")

	list, err = repo.ListByMatch(ctx, "match-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInMemory_Validation(t *testing.T) {
	ctx := context.Background()
	repo := snapshots.NewInMemory(snapshots.RealTimeProvider{}, 0)

	assert.True(t, apperr.IsInvalidArgument(repo.Save(ctx, nil)))
	_, err := repo.Get(ctx, "match-1", "")
	assert.True(t, apperr.IsInvalidArgument(err))
	_, err = repo.ListByMatch(ctx, "")
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = repo.Get(ctx, "match-1", "rt-1")
	assert.True(t, apperr.IsNotFound(err))
}
