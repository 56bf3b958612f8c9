package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// contributorsConcentrationDepth is the "last M=10 revisions" spec.md
// §4.3 "Contributors concentration" ranks authors over.
const contributorsConcentrationDepth = 10

// ContributorsConcentration scores a page by how much its most recent
// revisions are dominated by a single author: (top contributor's count)
// / M.
type ContributorsConcentration struct {
	Client *client.Client
	Window Window
}

func (m *ContributorsConcentration) Name() string { return "Contributors concentration" }

func (m *ContributorsConcentration) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		revs, err := m.Client.ListRevisions(ctx, lang, title, client.RevisionOptions{
			End:   m.Window.EndISO,
			Dir:   "older",
			Limit: contributorsConcentrationDepth,
		})
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		if len(revs) == 0 {
			scores[title] = 0.0
			continue
		}

		counts := make(map[string]int)
		for _, rev := range revs {
			counts[rev.User]++
		}

		top := 0
		for _, c := range counts {
			if c > top {
				top = c
			}
		}

		scores[title] = clampUnit(float64(top) / float64(contributorsConcentrationDepth))
	}

	return scores
}
