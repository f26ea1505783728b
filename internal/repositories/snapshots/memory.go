package snapshots

import (
	"context"
	"sort"
	"sync"
	"time"

	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
)

type memoryRepo struct {
	mu           sync.RWMutex
	data         map[string]map[string]*Data
	timeProvider TimeProvider
	ttl          time.Duration
}

// NewInMemory creates a process-local repository with the same expiry rules
// as the Redis one
func NewInMemory(timeProvider TimeProvider, ttl time.Duration) Repository {
	return &memoryRepo{
		data:         make(map[string]map[string]*Data),
		timeProvider: timeProvider,
		ttl:          ttl,
	}
}

func (m *memoryRepo) Save(_ context.Context, snapshot *Snapshot) error {
	if err := validate(snapshot); err != nil {
		return err
	}

	snapshot.SavedAt = m.timeProvider.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	match, ok := m.data[snapshot.MatchID]
	if !ok {
		match = make(map[string]*Data)
		m.data[snapshot.MatchID] = match
	}
	match[snapshot.Status.RuntimeID] = toData(snapshot)
	return nil
}

func (m *memoryRepo) Get(_ context.Context, matchID, runtimeID string) (*Snapshot, error) {
	if err := validateIDs(matchID, runtimeID); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[matchID][runtimeID]
	if !ok || m.expired(data) {
		return nil, notFound(matchID, runtimeID)
	}
	return toSnapshot(data), nil
}

func (m *memoryRepo) Delete(_ context.Context, matchID, runtimeID string) error {
	if err := validateIDs(matchID, runtimeID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[matchID][runtimeID]
	if !ok {
		return notFound(matchID, runtimeID)
	}
	delete(m.data[matchID], runtimeID)
	if m.expired(data) {
		return notFound(matchID, runtimeID)
	}
	return nil
}

func (m *memoryRepo) ListByMatch(_ context.Context, matchID string) ([]*Snapshot, error) {
	if matchID == "" {
		return nil, apperr.InvalidArgument("match id is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshots := make([]*Snapshot, 0, len(m.data[matchID]))
	for _, data := range m.data[matchID] {
		if m.expired(data) {
			continue
		}
		snapshots = append(snapshots, toSnapshot(data))
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Status.RuntimeID < snapshots[j].Status.RuntimeID
	})
	return snapshots, nil
}

func (m *memoryRepo) expired(data *Data) bool {
	return m.ttl > 0 && m.timeProvider.Now().Sub(data.SavedAt) >= m.ttl
}
