package metrics

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
)

// addDeleteRevisionDepth is the "last N=10 revisions" spec.md §4.3
// "Add/delete ratio (page-level)" operates on.
const addDeleteRevisionDepth = 10

// privilegedGroups are excluded from the add/delete computation when
// ExcludePrivileged is set.
var privilegedGroups = []string{"sysop", "bureaucrat", "rollbacker", "bot"}

// AddDeleteRatio scores a page by the imbalance between growing and
// shrinking edits among its most recent revisions, optionally excluding
// privileged editors (spec.md §4.3 "Add/delete ratio (page-level)").
type AddDeleteRatio struct {
	Client            *client.Client
	Window            Window
	ExcludePrivileged bool
}

func (m *AddDeleteRatio) Name() string { return "Add/delete ratio" }

func (m *AddDeleteRatio) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		revs, err := m.Client.ListRevisions(ctx, lang, title, client.RevisionOptions{
			End:   m.Window.EndISO,
			Dir:   "older",
			Limit: addDeleteRevisionDepth,
		})
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		if m.ExcludePrivileged {
			revs = m.filterPrivileged(ctx, lang, revs)
		}

		scores[title] = addDeleteImbalance(revs)
	}

	return scores
}

func (m *AddDeleteRatio) filterPrivileged(ctx context.Context, lang string, revs []client.Revision) []client.Revision {
	usernames := make([]string, 0, len(revs))
	seen := make(map[string]bool)
	for _, rev := range revs {
		if !seen[rev.User] {
			seen[rev.User] = true
			usernames = append(usernames, rev.User)
		}
	}

	groups, err := m.Client.GetUserGroups(ctx, lang, usernames)
	if err != nil {
		log.Warn().Err(err).Str("metric", m.Name()).Msg("user-groups lookup failed, skipping privileged filter")
		return revs
	}

	filtered := make([]client.Revision, 0, len(revs))
	for _, rev := range revs {
		if client.HasAnyGroup(groups[rev.User], privilegedGroups...) {
			continue
		}
		filtered = append(filtered, rev)
	}
	return filtered
}

// addDeleteImbalance computes |A-D|/(A+D) over consecutive size deltas of
// a newest-first revision list, for the page-level Add/delete collector.
func addDeleteImbalance(revs []client.Revision) float64 {
	var adds, deletes int
	for i := 0; i < len(revs)-1; i++ {
		delta := revs[i].Size - revs[i+1].Size
		switch {
		case delta > 0:
			adds++
		case delta < 0:
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
