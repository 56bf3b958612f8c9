package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// stalenessRevisionDepth is the "10th most recent revision" spec.md §4.3
// "Staleness" measures age from.
const stalenessRevisionDepth = 10

// stalenessHorizonDays calibrates age-in-days into [0,1]: score =
// min(1, days / 365).
const stalenessHorizonDays = 365.0

// Staleness scores a page by how long ago its 10th most recent revision
// (at or before the window's end) was made, relative to end. Fewer than
// 10 revisions, or a missing page, scores the maximum deficit.
type Staleness struct {
	Client *client.Client
	Window Window
}

func (m *Staleness) Name() string { return "Staleness" }

func (m *Staleness) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	endRef, endErr := parseTimestamp(m.Window.EndISO)

	for _, title := range titles {
		revs, err := m.Client.ListRevisions(ctx, lang, title, client.RevisionOptions{
			End:   m.Window.EndISO,
			Dir:   "older",
			Limit: stalenessRevisionDepth,
		})
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		if len(revs) < stalenessRevisionDepth || endErr != nil {
			scores[title] = 1.0
			continue
		}

		tenth := revs[stalenessRevisionDepth-1]
		ts, err := parseTimestamp(tenth.Timestamp)
		if err != nil {
			scores[title] = 1.0
			continue
		}

		days := endRef.Sub(ts).Hours() / 24.0
		if days < 0 {
			days = 0
		}
		scores[title] = clampUnit(days / stalenessHorizonDays)
	}

	return scores
}
