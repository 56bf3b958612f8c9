package metrics

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/resolver"
)

// sockpuppetRevisionDepth is the "last K=500 revisions" spec.md §4.3
// "Sockpuppets" checks against the suspect list.
const sockpuppetRevisionDepth = 500

// Sockpuppets scores a page 1.0 if any revision among its last K=500 was
// authored by a username on the suspect list, 0.0 otherwise (spec.md §4.3
// "Sockpuppets"). Matches are also exposed per page via Matched, the
// optional side channel spec.md §4.3 allows.
//
// One Sockpuppets instance is shared across every (language, batch) work
// item the orchestrator dispatches for this metric, and those work items
// run concurrently on different worker goroutines — so Matched must be
// guarded rather than written to directly, the same way the orchestrator
// itself avoids touching the shared matrix from more than one goroutine.
type Sockpuppets struct {
	Client   *client.Client
	Suspects map[string]bool // usernames, exact-match (see LoadUsernameSet)

	mu sync.Mutex
	// Matched collects, per unique_key (resolver.UniqueKey(title, lang)),
	// the suspect usernames found across all Collect calls. Keyed by
	// unique_key rather than bare title so that two language editions
	// sharing a title never collide. Populated as a side effect; not part
	// of the Collector contract.
	Matched map[string][]string
}

func (m *Sockpuppets) Name() string { return "Sockpuppets" }

func (m *Sockpuppets) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		revs, err := m.Client.ListRevisions(ctx, lang, title, client.RevisionOptions{
			Dir:   "older",
			Limit: sockpuppetRevisionDepth,
		})
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		seen := make(map[string]bool)
		var matched []string
		for _, rev := range revs {
			if m.Suspects[rev.User] && !seen[rev.User] {
				seen[rev.User] = true
				matched = append(matched, rev.User)
			}
		}

		if len(matched) > 0 {
			scores[title] = 1.0
			m.recordMatch(resolver.UniqueKey(title, lang), matched)
		} else {
			scores[title] = 0.0
		}
	}

	return scores
}

func (m *Sockpuppets) recordMatch(uniqueKey string, matched []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Matched == nil {
		m.Matched = make(map[string][]string)
	}
	m.Matched[uniqueKey] = matched
}
