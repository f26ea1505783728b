package snapshots

import (
	"context"
	"time"

	"github.com/KirkDiggler/lanternfall/internal/domain/survivor"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interface.go

// Snapshot is a stored runtime status within one match
type Snapshot struct {
	MatchID string
	Status  *survivor.Status
	SavedAt time.Time
}

// Repository defines the interface for snapshot storage operations
type Repository interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Get(ctx context.Context, matchID, runtimeID string) (*Snapshot, error)
	Delete(ctx context.Context, matchID, runtimeID string) error
	ListByMatch(ctx context.Context, matchID string) ([]*Snapshot, error)
}
