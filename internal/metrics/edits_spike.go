package metrics

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// editsSpikeDivisor calibrates the raw spike statistic (spec.md §4.3
// "Edits spike"): score = min(1, spike / 22).
const editsSpikeDivisor = 22.0

// EditsSpike scores a page by the relative deviation of its peak daily
// edit count from its median, over the analysis window. Bot-named editors
// are excluded from the count per ExcludeBots.
type EditsSpike struct {
	Client      *client.Client
	Window      Window
	ExcludeBots bool
}

func (m *EditsSpike) Name() string { return "Edits spikes" }

func (m *EditsSpike) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		revs, err := m.Client.ListRevisions(ctx, lang, title, client.RevisionOptions{
			Start: m.Window.StartISO,
			End:   m.Window.EndISO,
			Dir:   "newer",
		})
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		byDay := make(map[string]int)
		for _, rev := range revs {
			if m.ExcludeBots && strings.Contains(strings.ToLower(rev.User), "bot") {
				continue
			}
			ts, err := parseTimestamp(rev.Timestamp)
			if err != nil {
				continue
			}
			byDay[ts.Format("2006-01-02")]++
		}

		if len(byDay) == 0 {
			scores[title] = 0.0
			continue
		}

		counts := make([]float64, 0, len(byDay))
		for _, n := range byDay {
			counts = append(counts, float64(n))
		}

		scores[title] = clampUnit(spike(counts) / editsSpikeDivisor)
	}

	return scores
}
