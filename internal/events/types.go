package events

import (
	"time"

	"github.com/KirkDiggler/lanternfall/internal/domain/role"
)

// EventType represents the type of role event
type EventType string

// Event is the base interface for all role events
type Event interface {
	GetType() EventType
	IsCancelled() bool
	Cancel()
}

// RoleEvent is emitted by a role runtime. Payload keys depend on Type.
type RoleEvent struct {
	Type      EventType
	RuntimeID string
	PlayerID  string
	Codename  role.Codename
	At        time.Duration
	Payload   map[string]any
	Cancelled bool
}

func (e *RoleEvent) GetType() EventType { return e.Type }
func (e *RoleEvent) IsCancelled() bool  { return e.Cancelled }
func (e *RoleEvent) Cancel()            { e.Cancelled = true }

// Float reads a numeric payload value, zero when absent
func (e *RoleEvent) Float(key string) float64 {
	v, _ := e.Payload[key].(float64)
	return v
}

// String reads a string payload value, empty when absent
func (e *RoleEvent) String(key string) string {
	v, _ := e.Payload[key].(string)
	return v
}
