package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpike_ConstantSeriesScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, spike([]float64{10, 10, 10, 10}))
}

func TestSpike_SingleOutlier(t *testing.T) {
	// median of {0,0,0,50} is 0; spike = (50-0)/(0+1) = 50.
	got := spike([]float64{0, 0, 0, 50})
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestClampUnit(t *testing.T) {
	assert.Equal(t, 0.0, clampUnit(-1))
	assert.Equal(t, 1.0, clampUnit(2))
	assert.Equal(t, 0.5, clampUnit(0.5))
}

func TestViewsSpikeScore_MatchesDivisor(t *testing.T) {
	// spec.md §8: "Series with one day of value K and median 0 -> score
	// min(1, K / 37.2)".
	k := 18.0
	spikeValue := spike([]float64{0, 0, k})
	score := clampUnit(spikeValue / viewsSpikeDivisor)
	assert.InDelta(t, k/37.2002, score, 1e-3)
}
