package effects

import (
	"container/heap"
	"sort"
	"time"
)

// Registry tracks active buff, debuff and cooldown ids for one role runtime.
// Timed entries expire when Advance moves simulation time past their
// deadline. A Registry has a single owner and is not safe for concurrent use.
type Registry struct {
	now time.Duration
	seq uint64

	active map[Kind]map[string]struct{}
	// deadlines holds timed entries only; an active id without a deadline is
	// permanent until removed.
	deadlines map[Kind]map[string]time.Duration
	queue     expiryQueue
}

// NewRegistry creates an empty registry at time zero
func NewRegistry() *Registry {
	return &Registry{
		active:    make(map[Kind]map[string]struct{}),
		deadlines: make(map[Kind]map[string]time.Duration),
	}
}

// Now returns the last time passed to Advance
func (r *Registry) Now() time.Duration {
	return r.now
}

// Add activates id. With a positive duration the id expires at now+duration.
//
// Re-adding an active id never creates a second entry. A timed entry moves to
// the later of its current and new deadline; a re-add without a duration
// leaves a pending expiry alone; a permanent entry stays permanent.
func (r *Registry) Add(kind Kind, id string, duration time.Duration) {
	set := r.set(kind)
	_, exists := set[id]
	set[id] = struct{}{}

	deadlines := r.deadlineSet(kind)
	current, timed := deadlines[id]

	if duration <= 0 {
		return
	}
	if exists && !timed {
		return
	}

	at := r.now + duration
	if timed && at <= current {
		return
	}

	deadlines[id] = at
	r.seq++
	heap.Push(&r.queue, queued{id: id, kind: kind, at: at, seq: r.seq})
}

// Remove deactivates id. It reports whether the id was active.
func (r *Registry) Remove(kind Kind, id string) bool {
	set := r.active[kind]
	if _, ok := set[id]; !ok {
		return false
	}
	delete(set, id)
	delete(r.deadlines[kind], id)
	return true
}

// Has reports whether id is active
func (r *Registry) Has(kind Kind, id string) bool {
	_, ok := r.active[kind][id]
	return ok
}

// Remaining returns the time left on a timed entry. Permanent and inactive
// entries report false.
func (r *Registry) Remaining(kind Kind, id string) (time.Duration, bool) {
	at, ok := r.deadlines[kind][id]
	if !ok {
		return 0, false
	}
	if at <= r.now {
		return 0, true
	}
	return at - r.now, true
}

// IDs returns the active ids of a kind in sorted order
func (r *Registry) IDs(kind Kind) []string {
	set := r.active[kind]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear empties one kind immediately. Queued deadlines for cleared ids are
// skipped when they come due.
func (r *Registry) Clear(kind Kind) {
	delete(r.active, kind)
	delete(r.deadlines, kind)
}

// ClearAll empties every kind and drops the queue
func (r *Registry) ClearAll() {
	r.active = make(map[Kind]map[string]struct{})
	r.deadlines = make(map[Kind]map[string]time.Duration)
	r.queue = nil
}

// Advance moves simulation time forward and removes every entry whose
// deadline is at or before now, in deadline order. Time never moves
// backwards; an earlier now is ignored.
func (r *Registry) Advance(now time.Duration) []Expiry {
	if now < r.now {
		return nil
	}
	r.now = now

	var expired []Expiry
	for r.queue.Len() > 0 && r.queue[0].at <= now {
		entry := heap.Pop(&r.queue).(queued)

		at, ok := r.deadlines[entry.kind][entry.id]
		if !ok || at != entry.at {
			continue
		}

		delete(r.deadlines[entry.kind], entry.id)
		delete(r.active[entry.kind], entry.id)
		expired = append(expired, Expiry{ID: entry.id, Kind: entry.kind, At: entry.at})
	}
	return expired
}

// Pending returns the number of queued deadlines, stale ones included
func (r *Registry) Pending() int {
	return r.queue.Len()
}

func (r *Registry) set(kind Kind) map[string]struct{} {
	set, ok := r.active[kind]
	if !ok {
		set = make(map[string]struct{})
		r.active[kind] = set
	}
	return set
}

func (r *Registry) deadlineSet(kind Kind) map[string]time.Duration {
	set, ok := r.deadlines[kind]
	if !ok {
		set = make(map[string]time.Duration)
		r.deadlines[kind] = set
	}
	return set
}
