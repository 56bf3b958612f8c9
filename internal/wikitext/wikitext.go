// Package wikitext provides shared regex-based extraction helpers over raw
// MediaWiki markup, used by several Quality and Risk collectors: counting
// <ref> tags, pulling URLs out of them, and matching citation-needed /
// quality-assessment templates. Wikitext is markup, not rendered HTML, so
// these are regex passes rather than an HTML tree walk (see DESIGN.md).
package wikitext

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	refOpenPattern = regexp.MustCompile(`(?i)<ref[ >]`)
	refBlockPattern = regexp.MustCompile(`(?is)<ref[^>]*>(.*?)</ref>`)
	urlPattern     = regexp.MustCompile(`https?://[^\s<>"]+`)
)

// CountRefTags counts occurrences of an opening <ref ...> tag.
func CountRefTags(text string) int {
	return len(refOpenPattern.FindAllString(text, -1))
}

// RefBlocks returns the inner content of every <ref>...</ref> block.
func RefBlocks(text string) []string {
	matches := refBlockPattern.FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// URLsInRefs returns every URL found inside any <ref>...</ref> block.
func URLsInRefs(text string) []string {
	var urls []string
	for _, block := range RefBlocks(text) {
		urls = append(urls, urlPattern.FindAllString(block, -1)...)
	}
	return urls
}

// HostOf returns the lower-cased hostname of a URL, or "" if it can't be
// parsed.
func HostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// CitationNeededCount counts occurrences of any of the given
// citation-needed template names as a wikitext template invocation, e.g.
// {{cn}} or {{citation needed|date=2024}}.
func CitationNeededCount(text string, templateNames []string) int {
	if len(templateNames) == 0 {
		return 0
	}

	escaped := make([]string, len(templateNames))
	for i, name := range templateNames {
		escaped[i] = regexp.QuoteMeta(name)
	}
	pattern := regexp.MustCompile(`(?i)\{\{\s*(?:` + strings.Join(escaped, "|") + `)\b[^}]*\}\}`)
	return len(pattern.FindAllString(text, -1))
}

var talkFieldPatterns = struct {
	EnClass     *regexp.Regexp
	FrAvancement *regexp.Regexp
}{
	EnClass:      regexp.MustCompile(`(?i)\|\s*class\s*=\s*([^\s|}]+)`),
	FrAvancement: regexp.MustCompile(`(?i)avancement\s*=\s*([^|}]+)`),
}

// ExtractQualityGrade pulls the quality-assessment grade out of a Talk
// page's project banner wikitext, per language convention: "class=" on en,
// "avancement=" on fr. Returns "" if no banner is found.
func ExtractQualityGrade(lang, talkWikitext string) string {
	if strings.EqualFold(lang, "en") {
		if m := talkFieldPatterns.EnClass.FindStringSubmatch(talkWikitext); m != nil {
			return strings.ToLower(strings.TrimSpace(m[1]))
		}
		return ""
	}
	if m := talkFieldPatterns.FrAvancement.FindStringSubmatch(talkWikitext); m != nil {
		return strings.ToLower(strings.TrimSpace(m[1]))
	}
	return ""
}
