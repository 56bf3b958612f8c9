package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// anonymityFactor scales the anonymous-revision count into [0,1]: score =
// min(1, anonymityFactor * anonymous_count) (spec.md §4.3 "Anonymity").
const anonymityFactor = 0.1

// Anonymity scores a page by how many of its revisions in [start, end]
// were made by an anonymous IP or a temporary account.
type Anonymity struct {
	Client *client.Client
	Window Window
}

func (m *Anonymity) Name() string { return "Anonymity" }

func (m *Anonymity) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
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

		if len(revs) == 0 {
			scores[title] = 0.0
			continue
		}

		var anonCount int
		for _, rev := range revs {
			if rev.Anon || client.IsTemporaryAccount(rev.User) {
				anonCount++
			}
		}

		scores[title] = clampUnit(anonymityFactor * float64(anonCount))
	}

	return scores
}
