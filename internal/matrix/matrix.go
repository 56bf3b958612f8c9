// Package matrix defines the metric matrix shared between the
// orchestrator (which fills it) and the scorer (which reduces it),
// per spec.md §3 "Metric matrix".
package matrix

// Matrix is keyed first by metric name, then by unique_key. Every cell is
// a finite score in [0,1]; a missing metric or unique_key is equivalent
// to 0.0.
type Matrix map[string]map[string]float64

// New allocates an empty matrix for the given metric names.
func New(metricNames []string) Matrix {
	m := make(Matrix, len(metricNames))
	for _, name := range metricNames {
		m[name] = make(map[string]float64)
	}
	return m
}

// Set records a score for (metric, uniqueKey), creating the metric's row
// if necessary. Safe only for single-writer use; concurrent writers must
// serialize through a channel or mutex (spec.md §5 "Shared resources").
func (m Matrix) Set(metric, uniqueKey string, score float64) {
	row, ok := m[metric]
	if !ok {
		row = make(map[string]float64)
		m[metric] = row
	}
	row[uniqueKey] = score
}

// Get returns the cell for (metric, uniqueKey), defaulting to 0.0.
func (m Matrix) Get(metric, uniqueKey string) float64 {
	row, ok := m[metric]
	if !ok {
		return 0.0
	}
	return row[uniqueKey]
}

// Densify fills every (metric, uniqueKey) cell not yet present with 0.0,
// so that the matrix has exactly len(metricNames) * len(uniqueKeys)
// cells (spec.md §5 invariant).
func (m Matrix) Densify(metricNames, uniqueKeys []string) {
	for _, name := range metricNames {
		row, ok := m[name]
		if !ok {
			row = make(map[string]float64, len(uniqueKeys))
			m[name] = row
		}
		for _, key := range uniqueKeys {
			if _, ok := row[key]; !ok {
				row[key] = 0.0
			}
		}
	}
}
