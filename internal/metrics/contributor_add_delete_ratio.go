package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// contributorAddDeleteDepth is the "last M=10 contributors" spec.md §4.3
// "Contributor add/delete ratio" averages per-contributor imbalance over.
const contributorAddDeleteDepth = 10

// contributorAddDeleteContributions is the "last C=100 contributions"
// each contributor's add/delete imbalance is computed from.
const contributorAddDeleteContributions = 100

// ContributorAddDeleteRatio scores a page by the mean add/delete
// imbalance of its last M=10 contributors, each measured across their own
// last C=100 contributions (spec.md §4.3 "Contributor add/delete ratio").
type ContributorAddDeleteRatio struct {
	Client *client.Client
	Window Window
}

func (m *ContributorAddDeleteRatio) Name() string { return "Contributor add/delete ratio" }

func (m *ContributorAddDeleteRatio) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		usernames, err := lastContributors(ctx, m.Client, lang, title, m.Window.EndISO, contributorAddDeleteDepth, false)
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		if len(usernames) == 0 {
			scores[title] = 0.0
			continue
		}

		var total float64
		for _, username := range usernames {
			total += m.contributorImbalance(ctx, lang, username)
		}

		scores[title] = clampUnit(total / float64(len(usernames)))
	}

	return scores
}

func (m *ContributorAddDeleteRatio) contributorImbalance(ctx context.Context, lang, username string) float64 {
	contribs, err := m.Client.GetUserContributions(ctx, lang, username, contributorAddDeleteContributions)
	if err != nil || len(contribs) == 0 {
		return 0.0
	}

	var adds, deletes int
	for _, c := range contribs {
		switch {
		case c.SizeDiff > 0:
			adds++
		case c.SizeDiff < 0:
			deletes++
		}
	}

	if adds+deletes == 0 {
		return 0.0
	}

	diff := adds - deletes
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) / float64(adds+deletes)
}
