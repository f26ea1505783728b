package snapshots

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/lanternfall/internal/repositories/snapshots TimeProvider

type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the wall clock
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }
