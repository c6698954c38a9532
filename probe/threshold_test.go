package probe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeThreshold(t *testing.T) {
	tests := []struct {
		name        string
		capacity    uint64
		coefficient float64
		want        uint64
	}{
		{"scaled", 100, 0.65, 65},
		{"rounded up", 7, 0.5, 4},
		{"small coefficient", 100, 0.07, 7},
		{"small coefficient large capacity", 1000, 0.07, 70},
		{"fraction of one", 1, 0.01, 1},
		{"exactly one", 100, 1, 100},
		{"above one", 100, 1.2, 100},
		{"zero coefficient", 100, 0, 0},
		{"negative coefficient", 100, -0.5, 0},
		{"zero capacity", 0, 0.65, 0},
		{"max capacity", math.MaxUint64, 1, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeThreshold(tt.capacity, tt.coefficient))
		})
	}
}

func TestComputeThreshold_NaN(t *testing.T) {
	assert.Zero(t, ComputeThreshold(100, math.NaN()))
}

func TestComputeThreshold_NeverExceedsCapacity(t *testing.T) {
	for _, capacity := range []uint64{1, 3, 10, 99, 1000, 65535} {
		for _, k := range []float64{0.01, 0.33, 0.5, 0.65, 0.99, 1, 3} {
			assert.LessOrEqual(t, ComputeThreshold(capacity, k), capacity, "capacity=%d k=%v", capacity, k)
		}
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, percent(0.65).Equal(percent(0.65)))
	assert.Equal(t, "65", percent(0.65).String())
	assert.Equal(t, "100", percent(1).String())
	assert.True(t, percent(math.NaN()).IsZero())
	assert.True(t, percent(math.Inf(1)).IsZero())
}
