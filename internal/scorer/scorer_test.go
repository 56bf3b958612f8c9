package scorer

import (
	"math"
	"testing"

	"github.com/opsci/wikisense/internal/matrix"
	"github.com/stretchr/testify/assert"
)

var allMetricNames = []string{
	MetricViewsSpike, MetricEditsSpike, MetricRevertRisk, MetricProtection,
	MetricDiscussionIntensity, MetricSuspiciousSources, MetricFeaturedArticle,
	MetricCitationGaps, MetricStaleness, MetricSourceConcentration,
	MetricAddDeleteRatio, MetricSockpuppets, MetricAnonymity,
	MetricContributorsConcentration, MetricSporadicity,
	MetricContributorAddDeleteRatio,
}

func TestScore_AllZero(t *testing.T) {
	m := matrix.New(allMetricNames)
	m.Densify(allMetricNames, []string{"Page___en"})

	scores := Score(m, []string{"Page___en"})
	got := scores["Page___en"]

	assert.Equal(t, 0.0, got.Heat)
	assert.Equal(t, 0.0, got.Quality)
	assert.Equal(t, 0.0, got.Risk)
	assert.Equal(t, 0.0, got.Sensitivity)
}

func TestScore_QualityOnly(t *testing.T) {
	// spec.md §8 scenario 2: only Staleness and Citation gaps are 1.0,
	// everything else 0.0. Quality weight sum is 10+10+3+2+2+1 = 28... but
	// scenario 2 only wires a subset of quality metrics onto the matrix, so
	// absent metrics are dropped from the weight sum (spec.md §4.5):
	// weight sum = Citation gaps(3) + Staleness(2) = 5,
	// raw = 3*1 + 2*1 = 5, normalized = 5/5 = 1.0... that would make
	// Quality=100. The worked example in spec.md §9 instead keeps all
	// quality metrics present at 0.0 except Staleness/Citation gaps, so the
	// full weight sum (28) applies: Q_only = (2*1 + 3*1)/28 * 100 ≈ 17.857.
	key := "Page___en"
	m := matrix.New(allMetricNames)
	m.Densify(allMetricNames, []string{key})
	m.Set(MetricStaleness, key, 1.0)
	m.Set(MetricCitationGaps, key, 1.0)

	scores := Score(m, []string{key})
	got := scores[key]

	wantQuality := (2.0*1 + 3.0*1) / 28.0 * 100.0
	assert.InDelta(t, wantQuality, got.Quality, 1e-9)
	assert.Equal(t, 0.0, got.Heat)
	assert.Equal(t, 0.0, got.Risk)
	assert.InDelta(t, (got.Heat+got.Quality+got.Risk)/3.0, got.Sensitivity, 1e-9)
}

func TestScore_MetricAbsentFromMatrixDroppedFromWeightSum(t *testing.T) {
	key := "Page___en"
	// Only wire one heat metric into the matrix; the rest of the category
	// is entirely absent (not just zeroed), so the weight sum shrinks to
	// just that metric's weight.
	m := matrix.Matrix{MetricRevertRisk: {key: 1.0}}

	scores := Score(m, []string{key})
	got := scores[key]

	assert.InDelta(t, 100.0, got.Heat, 1e-9)
}

func TestScore_SensitivityIsMeanOfCategories(t *testing.T) {
	key := "Page___fr"
	m := matrix.New(allMetricNames)
	m.Densify(allMetricNames, []string{key})
	m.Set(MetricViewsSpike, key, 1.0)
	m.Set(MetricSockpuppets, key, 1.0)

	scores := Score(m, []string{key})
	got := scores[key]

	assert.InDelta(t, (got.Heat+got.Quality+got.Risk)/3.0, got.Sensitivity, 1e-9)
}

func TestScore_FiniteAndBounded(t *testing.T) {
	key := "Page___en"
	m := matrix.New(allMetricNames)
	m.Densify(allMetricNames, []string{key})
	for _, name := range allMetricNames {
		m.Set(name, key, 1.0)
	}

	scores := Score(m, []string{key})
	got := scores[key]

	for _, v := range []float64{got.Heat, got.Quality, got.Risk, got.Sensitivity} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	assert.InDelta(t, 100.0, got.Heat, 1e-9)
	assert.InDelta(t, 100.0, got.Quality, 1e-9)
	assert.InDelta(t, 100.0, got.Risk, 1e-9)
	assert.InDelta(t, 100.0, got.Sensitivity, 1e-9)
}
