package metrics

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/wikitext"
)

// SuspiciousSources scores a page by how many distinct blacklisted
// domains appear among its <ref> citations (spec.md §4.3 "Suspicious
// sources"): 0 -> 0.0, 1 -> 0.5, >=2 -> 1.0.
type SuspiciousSources struct {
	Client    *client.Client
	Blacklist map[string]bool // lower-cased domain substrings
}

func (m *SuspiciousSources) Name() string { return "Suspicious sources" }

func (m *SuspiciousSources) Collect(ctx context.Context, titles []string, lang string) map[string]float64 {
	scores := make(map[string]float64, len(titles))

	for _, title := range titles {
		text, err := m.Client.GetWikitext(ctx, lang, title)
		if err != nil {
			log.Warn().Err(err).Str("metric", m.Name()).Str("title", title).Str("lang", lang).Msg("collector failure, scoring zero")
			scores[title] = 0.0
			continue
		}

		blacklistedHosts := make(map[string]bool)
		for _, rawURL := range wikitext.URLsInRefs(text) {
			host := wikitext.HostOf(rawURL)
			if host == "" {
				continue
			}
			for domain := range m.Blacklist {
				if strings.Contains(host, domain) {
					blacklistedHosts[host] = true
					break
				}
			}
		}

		switch len(blacklistedHosts) {
		case 0:
			scores[title] = 0.0
		case 1:
			scores[title] = 0.5
		default:
			scores[title] = 1.0
		}
	}

	return scores
}
