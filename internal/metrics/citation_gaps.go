package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/reference"
	"github.com/opsci/wikisense/internal/wikitext"
)

// citationGapFactor calibrates the needed-citation count (spec.md §4.3
// "Citation gaps"): score = min(1, 0.1 * needed_count), unless there is no
// <ref> at all, in which case score = 1.0 regardless of template count.
const citationGapFactor = 0.1

// CitationGaps scores a page by how often it flags its own sourcing as
// incomplete (citation-needed templates), treating total absence of
// references as the maximum deficit.
type CitationGaps struct {
	Client *client.Client
}

func (m *CitationGaps) Name() string { return "Citation gaps" }

func (m *CitationGaps) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))
	templates := reference.CitationNeededTemplates(lang)

	for _, title := range titles {
		text, err := m.Client.GetWikitext(ctx, lang, title)
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		if wikitext.CountRefTags(text) == 0 {
			scores[title] = 1.0
			continue
		}

		needed := wikitext.CitationNeededCount(text, templates)
		scores[title] = clampUnit(citationGapFactor * float64(needed))
	}

	return scores
}
