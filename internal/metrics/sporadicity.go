package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// sporadicityContributorDepth is the "last M=10 non-IP, non-temporary
// contributors" spec.md §4.3 "Sporadicity" averages activity over.
const sporadicityContributorDepth = 10

// sporadicityContributionDepth is the "last C=100 contributions" each
// contributor's activity span is measured against.
const sporadicityContributionDepth = 100

// sporadicityHorizonDays calibrates a contributor's activity span into
// [0,1]: activity = min(1, Δdays / 365).
const sporadicityHorizonDays = 365.0

// Sporadicity scores a page by how long an activity span its regular
// (non-IP, non-temporary) contributors have, averaged across the last
// M=10 of them: each contributor's span is the days between the oldest and
// newest of their last C=100 contributions.
type Sporadicity struct {
	Client *client.Client
	Window Window
}

func (m *Sporadicity) Name() string { return "Sporadicity" }

func (m *Sporadicity) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		usernames, err := lastContributors(ctx, m.Client, lang, title, m.Window.EndISO, sporadicityContributorDepth, true)
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
			total += m.contributorActivity(ctx, lang, username)
		}

		scores[title] = clampUnit(total / float64(len(usernames)))
	}

	return scores
}

func (m *Sporadicity) contributorActivity(ctx context.Context, lang, username string) float64 {
	contribs, err := m.Client.GetUserContributions(ctx, lang, username, sporadicityContributionDepth)
	if err != nil || len(contribs) < 2 {
		return 0.0
	}

	first, errFirst := parseTimestamp(contribs[len(contribs)-1].Timestamp)
	last, errLast := parseTimestamp(contribs[0].Timestamp)
	if errFirst != nil || errLast != nil {
		return 0.0
	}

	days := last.Sub(first).Hours() / 24.0
	if days < 0 {
		days = 0
	}
	return clampUnit(days / sporadicityHorizonDays)
}
