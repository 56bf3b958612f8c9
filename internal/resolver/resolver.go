// Package resolver turns raw, heterogeneous page identifiers — bare titles
// or full Wikipedia URLs, possibly in different language editions — into
// normalized PageInfo records keyed by a unique_key stable across the
// scoring pipeline.
package resolver

import (
	"net/url"
	"strings"
)

// PageInfo is the resolved form of one input string.
type PageInfo struct {
	OriginalInput string
	CleanTitle    string
	Language      string
	UniqueKey     string
}

// Resolve converts a list of raw inputs into PageInfo records using
// defaultLanguage for any input that doesn't carry its own language.
// Duplicate unique_keys collapse to a single PageInfo, keeping the first
// occurrence's OriginalInput.
func Resolve(inputs []string, defaultLanguage string) []PageInfo {
	seen := make(map[string]bool, len(inputs))
	infos := make([]PageInfo, 0, len(inputs))

	for _, input := range inputs {
		title, lang := extractTitleAndLanguage(input)
		if lang == "" {
			lang = defaultLanguage
		}
		uniqueKey := UniqueKey(title, lang)

		if seen[uniqueKey] {
			continue
		}
		seen[uniqueKey] = true

		infos = append(infos, PageInfo{
			OriginalInput: input,
			CleanTitle:    title,
			Language:      lang,
			UniqueKey:     uniqueKey,
		})
	}

	return infos
}

// UniqueKey builds the stable key a clean title and language edition
// collapse to across the scoring pipeline (the matrix, the scorer, and
// any collector side channel keyed per page rather than per bare title).
func UniqueKey(cleanTitle, lang string) string {
	return cleanTitle + "___" + lang
}

// extractTitleAndLanguage implements spec.md §4.2: a Wikipedia article URL
// yields (clean_title, language); anything else passes through unchanged
// with no detected language. Resolution never fails.
func extractTitleAndLanguage(input string) (title, lang string) {
	if !strings.HasPrefix(input, "http") {
		return input, ""
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return input, ""
	}

	if !strings.HasSuffix(parsed.Host, ".wikipedia.org") {
		return input, ""
	}

	const marker = "/wiki/"
	idx := strings.Index(parsed.Path, marker)
	if idx < 0 {
		return input, ""
	}

	host := parsed.Host
	subdomain := host[:strings.Index(host, ".")]

	rawTitle := parsed.Path[idx+len(marker):]
	decoded, err := url.PathUnescape(rawTitle)
	if err != nil {
		decoded = rawTitle
	}
	cleanTitle := strings.ReplaceAll(decoded, "_", " ")

	return cleanTitle, subdomain
}

// DetectDefaultLanguage inspects a mixed page list for URL-embedded
// language codes and returns the majority one, falling back to fallback
// when no input carries a detectable language. Used by the CLI surface
// when the caller doesn't pin a language explicitly; the core Analyze
// contract always takes an explicit default per spec.md §6.
func DetectDefaultLanguage(pages []string, fallback string) string {
	counts := make(map[string]int)
	for _, page := range pages {
		_, lang := extractTitleAndLanguage(page)
		if lang != "" {
			counts[lang]++
		}
	}

	best, bestCount := "", 0
	for lang, count := range counts {
		if count > bestCount {
			best, bestCount = lang, count
		}
	}
	if best == "" {
		return fallback
	}
	return best
}
