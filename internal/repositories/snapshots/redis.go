package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
)

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
	ttl          time.Duration
}

// NewRedis creates a Redis-backed repository. Snapshots and the per-match
// index expire after ttl; zero keeps them forever.
func NewRedis(client redis.UniversalClient, timeProvider TimeProvider, ttl time.Duration) Repository {
	return &redisRepo{
		client:       client,
		timeProvider: timeProvider,
		ttl:          ttl,
	}
}

func (r *redisRepo) Save(ctx context.Context, snapshot *Snapshot) error {
	if err := validate(snapshot); err != nil {
		return err
	}

	snapshot.SavedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(toData(snapshot))
	if err != nil {
		return apperr.Wrap(err, "failed to marshal snapshot data")
	}

	indexKey := matchIndexKey(snapshot.MatchID)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, snapshotKey(snapshot.MatchID, snapshot.Status.RuntimeID), string(jsonData), r.ttl)
	pipe.SAdd(ctx, indexKey, snapshot.Status.RuntimeID)
	if r.ttl > 0 {
		pipe.Expire(ctx, indexKey, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to save snapshot in Redis")
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, matchID, runtimeID string) (*Snapshot, error) {
	if err := validateIDs(matchID, runtimeID); err != nil {
		return nil, err
	}

	jsonData, err := r.client.Get(ctx, snapshotKey(matchID, runtimeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(matchID, runtimeID)
		}
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to get snapshot from Redis")
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, apperr.Wrap(err, "failed to unmarshal snapshot data")
	}

	return toSnapshot(&data), nil
}

func (r *redisRepo) Delete(ctx context.Context, matchID, runtimeID string) error {
	if err := validateIDs(matchID, runtimeID); err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, snapshotKey(matchID, runtimeID))
	pipe.SRem(ctx, matchIndexKey(matchID), runtimeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to delete snapshot from Redis")
	}

	if del.Val() == 0 {
		return notFound(matchID, runtimeID)
	}
	return nil
}

// ListByMatch returns every live snapshot of a match sorted by runtime id.
// Index entries whose snapshot already expired are skipped.
func (r *redisRepo) ListByMatch(ctx context.Context, matchID string) ([]*Snapshot, error) {
	if matchID == "" {
		return nil, apperr.InvalidArgument("match id is required")
	}

	runtimeIDs, err := r.client.SMembers(ctx, matchIndexKey(matchID)).Result()
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to get match snapshots from Redis")
	}
	if len(runtimeIDs) == 0 {
		return []*Snapshot{}, nil
	}

	keys := make([]string, len(runtimeIDs))
	for i, id := range runtimeIDs {
		keys[i] = snapshotKey(matchID, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to load match snapshots from Redis")
	}

	snapshots := make([]*Snapshot, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var data Data
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, apperr.Wrapf(err, "failed to unmarshal snapshot %s", runtimeIDs[i])
		}
		snapshots = append(snapshots, toSnapshot(&data))
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Status.RuntimeID < snapshots[j].Status.RuntimeID
	})
	return snapshots, nil
}
