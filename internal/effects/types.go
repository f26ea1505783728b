package effects

import "time"

// Kind separates the id namespaces a registry tracks
type Kind int

const (
	KindBuff Kind = iota
	KindDebuff
	KindCooldown
)

func (k Kind) String() string {
	switch k {
	case KindBuff:
		return "buff"
	case KindDebuff:
		return "debuff"
	case KindCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Expiry is an entry removed by Advance
type Expiry struct {
	ID   string
	Kind Kind
	At   time.Duration
}

// queued is one scheduled deadline. An entry is stale when the registry's
// current deadline for its id no longer matches At.
type queued struct {
	id   string
	kind Kind
	at   time.Duration
	seq  uint64
}

// expiryQueue is a min-heap on (at, seq) for container/heap
type expiryQueue []queued

func (q expiryQueue) Len() int { return len(q) }

func (q expiryQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q expiryQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *expiryQueue) Push(x any) { *q = append(*q, x.(queued)) }

func (q *expiryQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
