package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentile(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 2},
		{50, 3},
		{75, 4},
		{100, 5},
		{10, 1.4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, CalculatePercentile(data, tt.p), 1e-12, "p=%v", tt.p)
	}

	assert.InDelta(t, 2.5, CalculatePercentile([]int{1, 2, 3, 4}, 50), 1e-12)
	assert.True(t, math.IsNaN(CalculatePercentile([]float64{}, 50)))
}

func TestFinite_DropsNonFiniteAndSorts(t *testing.T) {
	in := []float64{3, math.NaN(), 1, math.Inf(1), 2, math.Inf(-1)}
	assert.Equal(t, []float64{1, 2, 3}, finite(in))
	assert.Equal(t, 3.0, in[0], "input must not be reordered")
}
