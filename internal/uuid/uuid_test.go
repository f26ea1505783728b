package uuid_test

import (
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/lanternfall/internal/uuid"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	first := gen.New()
	_, err := googleuuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, gen.New())
}

func TestSequenceGenerator(t *testing.T) {
	gen := uuid.NewSequenceGenerator("rt")
	assert.Equal(t, "rt-1", gen.New())
	assert.Equal(t, "rt-2", gen.New())
}
