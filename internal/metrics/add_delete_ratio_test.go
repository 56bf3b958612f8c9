package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsci/wikisense/internal/client"
)

func revsOfSizes(sizes ...int) []client.Revision {
	revs := make([]client.Revision, len(sizes))
	for i, s := range sizes {
		revs[i] = client.Revision{Size: s}
	}
	return revs
}

func TestAddDeleteImbalance_AllGrowth(t *testing.T) {
	// newest-first: 100 -> 80 -> 60 -> 40, every consecutive delta is +20.
	got := addDeleteImbalance(revsOfSizes(100, 80, 60, 40))
	assert.Equal(t, 1.0, got)
}

func TestAddDeleteImbalance_Balanced(t *testing.T) {
	// deltas: +10, -10 -> one add, one delete, perfectly balanced.
	got := addDeleteImbalance(revsOfSizes(110, 100, 110))
	assert.Equal(t, 0.0, got)
}

func TestAddDeleteImbalance_NoSizeChange(t *testing.T) {
	got := addDeleteImbalance(revsOfSizes(100, 100, 100))
	assert.Equal(t, 0.0, got)
}

func TestAddDeleteImbalance_SingleRevision(t *testing.T) {
	got := addDeleteImbalance(revsOfSizes(100))
	assert.Equal(t, 0.0, got)
}

func TestAddDeleteImbalance_Empty(t *testing.T) {
	got := addDeleteImbalance(nil)
	assert.Equal(t, 0.0, got)
}
