// Package scorer applies the fixed per-category weight tables of
// spec.md §4.5 to a metric matrix and produces the Heat/Quality/Risk/
// Sensitivity composites.
package scorer

import (
	"github.com/opsci/wikisense/internal/matrix"
)

// weightedMetric names one row of spec.md §4.5's weight table.
type weightedMetric struct {
	name   string
	weight float64
}

// Metric name constants. Each equals, character for character, the string
// literal returned by the matching internal/metrics collector's Name(), so
// the weight table and the matrix rows line up; nothing enforces the match.
const (
	MetricViewsSpike                = "Views spikes"
	MetricEditsSpike                = "Edits spikes"
	MetricRevertRisk                = "Edits revert probability"
	MetricProtection                = "Protection"
	MetricDiscussionIntensity       = "Discussion intensity"
	MetricSuspiciousSources         = "Suspicious sources"
	MetricFeaturedArticle           = "Featured article"
	MetricCitationGaps              = "Citation gaps"
	MetricStaleness                 = "Staleness"
	MetricSourceConcentration       = "Source concentration"
	MetricAddDeleteRatio            = "Add/delete ratio"
	MetricSockpuppets               = "Sockpuppets"
	MetricAnonymity                 = "Anonymity"
	MetricContributorsConcentration = "Contributors concentration"
	MetricSporadicity               = "Sporadicity"
	MetricContributorAddDeleteRatio = "Contributor add/delete ratio"
)

var heatWeights = []weightedMetric{
	{MetricViewsSpike, 5},
	{MetricEditsSpike, 4},
	{MetricRevertRisk, 3},
	{MetricProtection, 2},
	{MetricDiscussionIntensity, 1},
}

var qualityWeights = []weightedMetric{
	{MetricSuspiciousSources, 10},
	{MetricFeaturedArticle, 10},
	{MetricCitationGaps, 3},
	{MetricStaleness, 2},
	{MetricSourceConcentration, 2},
	{MetricAddDeleteRatio, 1},
}

var riskWeights = []weightedMetric{
	{MetricSockpuppets, 10},
	{MetricAnonymity, 5},
	{MetricContributorsConcentration, 3},
	{MetricSporadicity, 2},
	{MetricContributorAddDeleteRatio, 1},
}

// scalePercent applies spec.md §9's ×100 normalization to the composite
// scores, once, at this boundary. The API adapter's per-metric breakdown
// (internal/api.metricsForKey) applies its own ×100 separately.
const scalePercent = 100.0

// PageScore holds one page's four composite scores, each already scaled
// to [0,100], plus their pre-normalization raw sums.
type PageScore struct {
	Heat        float64
	Quality     float64
	Risk        float64
	Sensitivity float64

	HeatRaw    float64
	QualityRaw float64
	RiskRaw    float64
}

// Score reduces m into one PageScore per unique_key, per spec.md §4.5.
func Score(m matrix.Matrix, uniqueKeys []string) map[string]PageScore {
	results := make(map[string]PageScore, len(uniqueKeys))
	for _, key := range uniqueKeys {
		heatRaw, heatNorm := weightedCategory(m, key, heatWeights)
		qualityRaw, qualityNorm := weightedCategory(m, key, qualityWeights)
		riskRaw, riskNorm := weightedCategory(m, key, riskWeights)

		heat := heatNorm * scalePercent
		quality := qualityNorm * scalePercent
		risk := riskNorm * scalePercent

		results[key] = PageScore{
			Heat:        heat,
			Quality:     quality,
			Risk:        risk,
			Sensitivity: (heat + quality + risk) / 3.0,
			HeatRaw:     heatRaw,
			QualityRaw:  qualityRaw,
			RiskRaw:     riskRaw,
		}
	}
	return results
}

// weightedCategory computes raw = Σ weight_i * metric_i and normalized =
// raw / Σ weight_i, dropping any metric absent from the matrix entirely
// from the weight sum (spec.md §4.5: "If a metric is absent from the
// matrix it is simply dropped from its category's weight sum").
func weightedCategory(m matrix.Matrix, key string, weights []weightedMetric) (raw, normalized float64) {
	var weightSum float64
	for _, wm := range weights {
		row, present := m[wm.name]
		if !present {
			continue
		}
		raw += wm.weight * row[key]
		weightSum += wm.weight
	}
	if weightSum == 0 {
		return 0.0, 0.0
	}
	return raw, raw / weightSum
}
