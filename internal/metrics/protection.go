package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/reference"
)

// Protection scores a page by its highest edit-protection level (spec.md
// §4.3 "Protection"), via internal/reference's static level-to-score
// table.
type Protection struct {
	Client *client.Client
}

func (m *Protection) Name() string { return "Protection" }

func (m *Protection) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		entries, err := m.Client.GetProtection(ctx, lang, title)
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		highestScore := 0.0
		for _, entry := range entries {
			if entry.Type != "edit" {
				continue
			}
			if s := reference.ProtectionLevelScore(entry.Level); s > highestScore {
				highestScore = s
			}
		}

		scores[title] = highestScore
	}

	return scores
}
