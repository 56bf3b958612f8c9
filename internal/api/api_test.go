package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsci/wikisense/internal/client"
)

func TestAnalyze_NoPages(t *testing.T) {
	result, err := Analyze(context.Background(), nil, "2026-01-01", "2026-01-31", "en", Options{
		Client: client.New(),
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Pages)
	assert.Equal(t, 20, result.Summary.BatchSize)
}

// allMissingServer answers every MediaWiki action-API call with a "missing
// page" response, every Pageviews call with an empty series, and every
// Lift Wing predict call with a zero score -- exercising the full pipeline
// wiring end to end with every collector degrading to its no-data score
// (0.0 for all but Citation gaps and Staleness, which score 1.0).
func allMissingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/w/api.php":
			fmt.Fprint(w, `{"query":{"pages":[{"missing":true}],"users":[],"usercontribs":[]}}`)
		case r.URL.Path == "/service/lw/inference/v1/models/revertrisk-language-agnostic:predict",
			r.URL.Path == "/service/lw/inference/v1/models/readability:predict",
			r.URL.Path == "/service/lw/inference/v1/models/reference-risk:predict":
			fmt.Fprint(w, `{"output":{"probabilities":{"true":0},"score":0}}`)
		default:
			fmt.Fprint(w, `{"items":[]}`)
		}
	}))
}

func TestAnalyze_EndToEnd_MissingPageDegradesPerMetric(t *testing.T) {
	srv := allMissingServer(t)
	defer srv.Close()

	c := client.New(
		client.WithBaseURLOverride("en.wikipedia.org", srv.URL),
		client.WithBaseURLOverride("wikimedia.org", srv.URL),
		client.WithBaseURLOverride("api.wikimedia.org", srv.URL),
	)

	result, err := Analyze(
		context.Background(),
		[]string{"https://en.wikipedia.org/wiki/Test_Page"},
		"2026-01-01", "2026-01-31", "en",
		Options{
			Client:    c,
			Blacklist: map[string]bool{},
			Suspects:  map[string]bool{},
			Logger:    zerolog.Nop(),
		},
	)
	require.NoError(t, err)
	require.Len(t, result.Pages, 1)

	page := result.Pages[0]
	assert.Equal(t, "Test Page", page.Title)
	assert.Equal(t, "en", page.Language)
	assert.Equal(t, "ok", page.Status)
	assert.Equal(t, 0.0, page.Scores.Heat)
	// spec.md §8 scenario 2: a missing page has no <ref> tags at all and
	// fewer than 10 revisions, so Citation gaps and Staleness both default
	// to their maximum deficit (1.0) while every other Quality metric
	// scores 0.0 -- Quality = (3*1 + 2*1) / 28 * 100, not 0.
	wantQuality := (3.0*1 + 2.0*1) / 28.0 * 100.0
	assert.InDelta(t, wantQuality, page.Scores.Quality, 1e-9)
	assert.Equal(t, 0.0, page.Scores.Risk)
	assert.InDelta(t, (page.Scores.Heat+page.Scores.Quality+page.Scores.Risk)/3.0, page.Scores.Sensitivity, 1e-9)
	assert.NotEmpty(t, result.Summary.RunID)
	assert.Equal(t, 1, result.Summary.TotalPages)
	assert.Equal(t, 1, result.Summary.PagesPerLanguage["en"])
}

func TestEffectiveBatchSize(t *testing.T) {
	assert.Equal(t, 20, effectiveBatchSize(0))
	assert.Equal(t, 20, effectiveBatchSize(-5))
	assert.Equal(t, 7, effectiveBatchSize(7))
}
