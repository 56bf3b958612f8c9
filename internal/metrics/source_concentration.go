package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/wikitext"
)

// SourceConcentration scores a page by how dominated its citations are by
// a single host (spec.md §4.3 "Source concentration").
type SourceConcentration struct {
	Client *client.Client
}

func (m *SourceConcentration) Name() string { return "Source concentration" }

func (m *SourceConcentration) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		text, err := m.Client.GetWikitext(ctx, lang, title)
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		urls := wikitext.URLsInRefs(text)
		if len(urls) == 0 {
			scores[title] = 0.0
			continue
		}

		counts := make(map[string]int)
		for _, rawURL := range urls {
			host := wikitext.HostOf(rawURL)
			counts[host]++
		}

		topCount := 0
		for _, c := range counts {
			if c > topCount {
				topCount = c
			}
		}

		scores[title] = clampUnit(float64(topCount) / float64(len(urls)))
	}

	return scores
}
