package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneToTen() []float64 {
	return []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
}

func TestPercentileLinearInterpolation(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{p: 0, want: 1},
		{p: 10, want: 1.9},
		{p: 25, want: 3.25},
		{p: 50, want: 5.5},
		{p: 90, want: 9.1},
		{p: 100, want: 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(oneToTen(), tt.p), 1e-9, "p%.0f", tt.p)
	}
}

func TestPercentileDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = Percentile(in, 50)
	assert.Equal(t, []float64{3, 1, 2}, in)
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}

func TestComputeSummary(t *testing.T) {
	s, err := Compute([]float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5})
	require.NoError(t, err)

	assert.Equal(t, 10, s.Count)
	assert.InDelta(t, 5.5, s.Mean, 1e-12)
	assert.InDelta(t, 5.5, s.Median, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 10.0, s.Max)
	assert.InDelta(t, 1.9, s.P10, 1e-12)
	assert.InDelta(t, 9.1, s.P90, 1e-12)
	// population variance of 1..10 is 8.25
	assert.InDelta(t, math.Sqrt(8.25), s.StdDev, 1e-12)
	assert.InDelta(t, 3.25, s.Q1, 1e-12)
	assert.InDelta(t, 7.75, s.Q3, 1e-12)
	assert.InDelta(t, 7.3, s.Percentile(70), 1e-12)
}

func TestComputeSingleValue(t *testing.T) {
	s, err := Compute([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 42.0, s.Median)
	assert.Equal(t, 42.0, s.P90)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 42.0, s.WhiskerLow)
	assert.Equal(t, 42.0, s.WhiskerHigh)
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestWhiskersExcludeOutliers(t *testing.T) {
	s, err := Compute([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.WhiskerLow)
	assert.Equal(t, 9.0, s.WhiskerHigh)
	assert.Equal(t, 100.0, s.Max)
}
