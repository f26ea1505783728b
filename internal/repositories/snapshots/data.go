package snapshots

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/lanternfall/internal/domain/survivor"
	apperr "github.com/KirkDiggler/lanternfall/internal/errors"
)

// Data is the stored JSON form of a snapshot
type Data struct {
	MatchID string          `json:"match_id"`
	Status  survivor.Status `json:"status"`
	SavedAt time.Time       `json:"saved_at"`
}

func snapshotKey(matchID, runtimeID string) string {
	return fmt.Sprintf("snapshot:%s:%s", matchID, runtimeID)
}

func matchIndexKey(matchID string) string {
	return fmt.Sprintf("match:%s:snapshots", matchID)
}

func validate(snapshot *Snapshot) error {
	if snapshot == nil || snapshot.Status == nil {
		return apperr.InvalidArgument("snapshot status cannot be nil")
	}
	if snapshot.MatchID == "" {
		return apperr.InvalidArgument("snapshot match id is required")
	}
	if snapshot.Status.RuntimeID == "" {
		return apperr.InvalidArgument("snapshot runtime id is required")
	}
	return nil
}

func validateIDs(matchID, runtimeID string) error {
	if matchID == "" || runtimeID == "" {
		return apperr.InvalidArgument("match id and runtime id are required")
	}
	return nil
}

func toData(snapshot *Snapshot) *Data {
	return &Data{
		MatchID: snapshot.MatchID,
		Status:  cloneStatus(snapshot.Status),
		SavedAt: snapshot.SavedAt,
	}
}

func toSnapshot(data *Data) *Snapshot {
	if data == nil {
		return nil
	}
	status := cloneStatus(&data.Status)
	return &Snapshot{
		MatchID: data.MatchID,
		Status:  &status,
		SavedAt: data.SavedAt,
	}
}

func notFound(matchID, runtimeID string) error {
	return apperr.NotFoundf("snapshot %s not found", runtimeID).
		WithMeta("match_id", matchID).
		WithMeta("runtime_id", runtimeID)
}

func cloneStatus(status *survivor.Status) survivor.Status {
	out := *status
	out.Buffs = append([]string(nil), status.Buffs...)
	out.Debuffs = append([]string(nil), status.Debuffs...)
	return out
}
