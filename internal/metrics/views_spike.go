package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// viewsSpikeDivisor calibrates the raw spike statistic into [0,1]
// (spec.md §4.3 "Views spike"): score = min(1, spike / 37.2002).
const viewsSpikeDivisor = 37.2002

// ViewsSpike scores a page by the relative deviation of its peak daily
// pageview count from its median, over the analysis window.
type ViewsSpike struct {
	Client *client.Client
	Window Window
}

func (m *ViewsSpike) Name() string { return "Views spikes" }

func (m *ViewsSpike) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		series, err := m.Client.GetDailyPageviews(ctx, lang, title, m.Window.StartDate, m.Window.EndDate)
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}
		if len(series) == 0 {
			scores[title] = 0.0
			continue
		}

		counts := make([]float64, len(series))
		for i, day := range series {
			counts[i] = float64(day.Views)
		}

		scores[title] = clampUnit(spike(counts) / viewsSpikeDivisor)
	}

	return scores
}
