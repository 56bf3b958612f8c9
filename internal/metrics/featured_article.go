package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/reference"
	"github.com/opsci/wikisense/internal/wikitext"
)

// FeaturedArticle scores a page by its quality-assessment grade as parsed
// from its Talk page's project banner (spec.md §4.3 "Featured article"):
// 0 for the top grade (FA/ADQ), rising to 1 for a stub; unrated is 0.
type FeaturedArticle struct {
	Client *client.Client
}

func (m *FeaturedArticle) Name() string { return "Featured article" }

func (m *FeaturedArticle) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))
	talkPrefix := reference.TalkPrefix(lang)

	for _, title := range titles {
		text, err := m.Client.GetWikitext(ctx, lang, talkPrefix+title)
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		grade := wikitext.ExtractQualityGrade(lang, text)
		if lang == "fr" {
			grade = reference.FrenchGradeAlias(grade)
		}
		scores[title] = reference.FeaturedArticleDeficit(lang, grade)
	}

	return scores
}
