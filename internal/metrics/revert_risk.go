package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// RevertRisk scores a page by the mean revert-probability, across all
// revisions in the analysis window, reported by the revertrisk-language-
// agnostic Lift Wing model (spec.md §4.3 "Revert risk").
type RevertRisk struct {
	Client *client.Client
	Window Window
}

func (m *RevertRisk) Name() string { return "Edits revert probability" }

func (m *RevertRisk) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		revs, err := m.Client.ListRevisions(ctx, lang, title, client.RevisionOptions{
			Start: m.Window.StartISO,
			End:   m.Window.EndISO,
			Dir:   "newer",
		})
		if err != nil || len(revs) == 0 {
			if err != nil {
				log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			}
			scores[title] = 0.0
			continue
		}

		var sum float64
		var n int
		for _, rev := range revs {
			prob, err := m.Client.PredictRevertRisk(ctx, lang, rev.RevID)
			if err != nil {
				log.Warn().Err(err).Str("metric", m.Name()).Int64("rev_id", rev.RevID).Msg("revert-risk prediction failed, skipping revision")
				continue
			}
			sum += prob
			n++
		}

		if n == 0 {
			scores[title] = 0.0
			continue
		}
		scores[title] = clampUnit(sum / float64(n))
	}

	return scores
}
