package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for uniform random draws
// This allows us to inject seeded or scripted sources for testing
type Roller interface {
	// Float returns a uniform value in [0, 1)
	Float() float64
}
