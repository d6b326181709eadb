package pixel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanvas(t *testing.T) {
	tests := []struct {
		triples int
		side    int
		filler  int
	}{
		{1, 1, 0},
		{2, 2, 2},
		{4, 2, 0},
		{5, 3, 4},
		{9, 3, 0},
		{10, 4, 6},
		{16, 4, 0},
		{17, 5, 8},
		{1 << 20, 1024, 0},
		{1<<20 + 1, 1025, 2048},
	}

	for _, tt := range tests {
		c, err := NewCanvas(tt.triples, 0)
		require.NoError(t, err)
		assert.Equal(t, tt.side, c.Side, "triples %d", tt.triples)
		assert.Equal(t, tt.filler, c.Filler(), "triples %d", tt.triples)
	}
}

func TestNewCanvasSmallest(t *testing.T) {
	for n := 1; n <= 5000; n++ {
		c, err := NewCanvas(n, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.Cells(), n)
		assert.Less(t, (c.Side-1)*(c.Side-1), n)
		assert.Less(t, c.Filler(), 2*c.Side+1)
	}
}

func TestNewCanvasEmpty(t *testing.T) {
	_, err := NewCanvas(0, 0)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestNewCanvasOverride(t *testing.T) {
	c, err := NewCanvas(10, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Side)
	assert.Equal(t, 26, c.Filler())

	c, err = NewCanvas(9, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Side)

	_, err = NewCanvas(10, 3)
	assert.True(t, errors.Is(err, ErrInsufficientCanvas))

	_, err = NewCanvas(10, -5)
	assert.True(t, errors.Is(err, ErrInsufficientCanvas))
}

func TestTripleCount(t *testing.T) {
	assert.Equal(t, 0, TripleCount(0))
	assert.Equal(t, 1, TripleCount(1))
	assert.Equal(t, 1, TripleCount(3))
	assert.Equal(t, 4, TripleCount(10))
	assert.Equal(t, 9, TripleCount(27))
}
