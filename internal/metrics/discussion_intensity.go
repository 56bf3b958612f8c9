package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/reference"
)

// discussionIntensityFactor calibrates the revision count into [0,1]
// (spec.md §4.3 "Discussion intensity"): score = min(1, 0.1 * count).
const discussionIntensityFactor = 0.1

// DiscussionIntensity scores a page by the volume of Talk-page activity
// within the analysis window.
type DiscussionIntensity struct {
	Client *client.Client
	Window Window
}

func (m *DiscussionIntensity) Name() string { return "Discussion intensity" }

func (m *DiscussionIntensity) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))
	talkPrefix := reference.TalkPrefix(lang)

	for _, title := range titles {
		talkTitle := talkPrefix + title
		revs, err := m.Client.ListRevisions(ctx, lang, talkTitle, client.RevisionOptions{
			Start: m.Window.StartISO,
			End:   m.Window.EndISO,
			Dir:   "newer",
		})
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		scores[title] = clampUnit(discussionIntensityFactor * float64(len(revs)))
	}

	return scores
}
