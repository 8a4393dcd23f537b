package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID_UniqueAndIncreasing(t *testing.T) {
	gen, err := NewGenerator(1)
	require.NoError(t, err)

	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 1000; i++ {
		id := gen.NextID()
		assert.Greater(t, id, last)
		assert.False(t, seen[id])
		seen[id] = true
		last = id
	}
}

func TestNewGenerator_InvalidNode(t *testing.T) {
	_, err := NewGenerator(-1)
	assert.Error(t, err)

	_, err = NewGenerator(4096)
	assert.Error(t, err)
}
