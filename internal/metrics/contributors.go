package metrics

import (
	"context"

	"github.com/opsci/wikisense/internal/client"
)

// contributorScanDepth bounds how far back Sporadicity and Contributor
// add/delete ratio scan a page's revision history while hunting for their
// last M=10 contributors.
const contributorScanDepth = 1000

// lastContributors returns, most-recent-first, the usernames of the first
// `count` distinct contributors found in title's revision history at or
// before end. When excludeAnonTemp is set, anonymous and temporary-account
// usernames are skipped (spec.md §4.3 "Sporadicity" vs. "Contributor
// add/delete ratio", which differ on this point).
func lastContributors(ctx context.Context, c *client.Client, lang, title, end string, count int, excludeAnonTemp bool) ([]string, error) {
	revs, err := c.ListRevisions(ctx, lang, title, client.RevisionOptions{
		End:   end,
		Dir:   "older",
		Limit: contributorScanDepth,
	})
	if err != nil {
		return nil, err
	}

	var usernames []string
	seen := make(map[string]bool)
	for _, rev := range revs {
		if excludeAnonTemp && (rev.Anon || client.IsTemporaryAccount(rev.User)) {
			continue
		}
		if seen[rev.User] {
			continue
		}
		seen[rev.User] = true
		usernames = append(usernames, rev.User)
		if len(usernames) >= count {
			break
		}
	}
	return usernames, nil
}
