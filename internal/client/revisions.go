package client

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Revision is the normalized form of one MediaWiki revisions-endpoint entry
// (spec.md §3 "Revision record (internal)").
type Revision struct {
	RevID     int64
	ParentID  int64
	Timestamp string // ISO-8601, as returned by the API
	User      string
	UserID    int64
	Anon      bool
	Minor     bool
	Size      int
	Comment   string
}

// tempAccountPattern matches a MediaWiki "temporary account" username:
// ~YYYY-DDDDD(-DDDDD)+ (spec.md §4.3 Anonymity, GLOSSARY).
var tempAccountPattern = regexp.MustCompile(`^~\d{4}-\d{1,5}(-\d{1,5})+$`)

// IsTemporaryAccount reports whether username matches the temporary-account
// naming convention.
func IsTemporaryAccount(username string) bool {
	return tempAccountPattern.MatchString(username)
}

// RevisionOptions narrows a ListRevisions call.
type RevisionOptions struct {
	Start string // ISO-8601 UTC lower bound of the window
	End   string // ISO-8601 UTC upper bound of the window
	Dir   string // "older" or "newer"; defaults to "older"
	Limit int    // 0 means "no cap, page through everything available"
}

// ListRevisions lists revisions of title on the given language edition,
// transparently paginating via the MediaWiki continue/rvcontinue protocol
// (spec.md Design Notes: "factor into an iterator ... handles continue/
// rvcontinue transparently"). A missing page yields an empty, non-error
// result — the caller's collector decides what a missing page means for
// its own score.
func (c *Client) ListRevisions(ctx context.Context, lang, title string, opts RevisionOptions) ([]Revision, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "older"
	}

	params := map[string]string{
		"action":        "query",
		"titles":        title,
		"prop":          "revisions",
		"rvprop":        "ids|timestamp|user|userid|flags|comment|size",
		"rvlimit":       "max",
		"rvdir":         dir,
		"format":        "json",
		"formatversion": "2",
	}
	if dir == "newer" {
		if opts.Start != "" {
			params["rvstart"] = opts.Start
		}
		if opts.End != "" {
			params["rvend"] = opts.End
		}
	} else {
		if opts.End != "" {
			params["rvstart"] = opts.End
		}
		if opts.Start != "" {
			params["rvend"] = opts.Start
		}
	}

	host := actionAPIHost(lang)
	var revisions []Revision
	continuation := map[string]string{}

	for {
		callParams := mergeParams(params, continuation)

		resp, err := c.request(ctx, host, func(r *resty.Request) (*resty.Response, error) {
			return r.SetQueryParams(callParams).Get("/w/api.php")
		})
		if err != nil {
			return nil, fmt.Errorf("list revisions for %q (%s): %w", title, lang, err)
		}

		body := resp.Body()
		page := gjson.GetBytes(body, "query.pages.0")
		if page.Get("missing").Exists() {
			return revisions, nil
		}

		for _, rev := range page.Get("revisions").Array() {
			revisions = append(revisions, Revision{
				RevID:     rev.Get("revid").Int(),
				ParentID:  rev.Get("parentid").Int(),
				Timestamp: rev.Get("timestamp").String(),
				User:      rev.Get("user").String(),
				UserID:    rev.Get("userid").Int(),
				Anon:      rev.Get("anon").Exists(),
				Minor:     rev.Get("minor").Exists(),
				Size:      int(rev.Get("size").Int()),
				Comment:   rev.Get("comment").String(),
			})

			if opts.Limit > 0 && len(revisions) >= opts.Limit {
				return revisions, nil
			}
		}

		cont := gjson.GetBytes(body, "continue")
		if !cont.Exists() {
			return revisions, nil
		}

		continuation = map[string]string{}
		cont.ForEach(func(key, value gjson.Result) bool {
			continuation[key.String()] = value.String()
			return true
		})
	}
}

func mergeParams(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// GetWikitext fetches the main-slot wikitext of the current revision of
// title. Missing pages return an empty string, not an error.
func (c *Client) GetWikitext(ctx context.Context, lang, title string) (string, error) {
	host := actionAPIHost(lang)
	params := map[string]string{
		"action":        "query",
		"titles":        title,
		"prop":          "revisions",
		"rvprop":        "content",
		"rvslots":       "main",
		"redirects":     "1",
		"format":        "json",
		"formatversion": "2",
	}

	resp, err := c.request(ctx, host, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(params).Get("/w/api.php")
	})
	if err != nil {
		return "", fmt.Errorf("fetch wikitext for %q (%s): %w", title, lang, err)
	}

	page := gjson.GetBytes(resp.Body(), "query.pages.0")
	if page.Get("missing").Exists() {
		return "", nil
	}
	return page.Get("revisions.0.slots.main.content").String(), nil
}

// ProtectionEntry is one entry of a page's protection configuration.
type ProtectionEntry struct {
	Type  string
	Level string
}

// GetProtection fetches the edit-protection entries for title.
func (c *Client) GetProtection(ctx context.Context, lang, title string) ([]ProtectionEntry, error) {
	host := actionAPIHost(lang)
	params := map[string]string{
		"action":        "query",
		"titles":        title,
		"prop":          "info",
		"inprop":        "protection",
		"format":        "json",
		"formatversion": "2",
	}

	resp, err := c.request(ctx, host, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(params).Get("/w/api.php")
	})
	if err != nil {
		return nil, fmt.Errorf("fetch protection for %q (%s): %w", title, lang, err)
	}

	page := gjson.GetBytes(resp.Body(), "query.pages.0")
	if page.Get("missing").Exists() {
		return nil, nil
	}

	var entries []ProtectionEntry
	for _, entry := range page.Get("protection").Array() {
		entries = append(entries, ProtectionEntry{
			Type:  entry.Get("type").String(),
			Level: entry.Get("level").String(),
		})
	}
	return entries, nil
}
