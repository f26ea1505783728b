package mockdice

import (
	"fmt"
	"sync"
)

// ManualMockRoller implements dice.Roller for testing with predetermined draws
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []float64
	rollIndex int
}

// NewManualMockRoller creates a new scripted roller
func NewManualMockRoller(rolls ...float64) *ManualMockRoller {
	return &ManualMockRoller{
		rolls: append([]float64{}, rolls...),
	}
}

// SetNextRoll appends the next draw
func (m *ManualMockRoller) SetNextRoll(roll float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the script and rewinds
func (m *ManualMockRoller) SetRolls(rolls []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append([]float64{}, rolls...)
	m.rollIndex = 0
}

// Used reports how many draws have been consumed
func (m *ManualMockRoller) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollIndex
}

// Remaining reports how many scripted draws are left
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

// Float implements dice.Roller.Float. Running past the script is a test bug
// and panics with the consumption count.
func (m *ManualMockRoller) Float() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		panic(fmt.Sprintf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls)))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll
}
