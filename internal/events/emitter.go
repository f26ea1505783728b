package events

//go:generate mockgen -destination=mock/mock_emitter.go -package=mockevents -source=emitter.go

// Emitter is the publishing side of a bus
type Emitter interface {
	Emit(event Event) error
}
