package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const userGroupBatchSize = 50

// GetUserGroups looks up the privilege groups of each username, batching
// requests at userGroupBatchSize per spec.md §4.1. Unknown or anonymous
// usernames are simply absent from the returned map.
func (c *Client) GetUserGroups(ctx context.Context, lang string, usernames []string) (map[string][]string, error) {
	groups := make(map[string][]string, len(usernames))
	host := actionAPIHost(lang)

	for start := 0; start < len(usernames); start += userGroupBatchSize {
		end := start + userGroupBatchSize
		if end > len(usernames) {
			end = len(usernames)
		}
		batch := usernames[start:end]

		params := map[string]string{
			"action":        "query",
			"list":          "users",
			"ususers":       strings.Join(batch, "|"),
			"usprop":        "groups",
			"format":        "json",
			"formatversion": "2",
		}

		resp, err := c.request(ctx, host, func(r *resty.Request) (*resty.Response, error) {
			return r.SetQueryParams(params).Get("/w/api.php")
		})
		if err != nil {
			return nil, fmt.Errorf("fetch user groups (%s): %w", lang, err)
		}

		for _, user := range gjson.GetBytes(resp.Body(), "query.users").Array() {
			name := user.Get("name").String()
			if name == "" || user.Get("missing").Exists() {
				continue
			}
			var userGroups []string
			for _, g := range user.Get("groups").Array() {
				userGroups = append(userGroups, g.String())
			}
			groups[name] = userGroups
		}
	}

	return groups, nil
}

// HasAnyGroup reports whether groups contains any of wanted.
func HasAnyGroup(groups []string, wanted ...string) bool {
	for _, g := range groups {
		for _, w := range wanted {
			if g == w {
				return true
			}
		}
	}
	return false
}

// UserContribution is one entry of a user's own contribution history.
type UserContribution struct {
	RevID     int64
	Title     string
	Timestamp string
	SizeDiff  int
}

// GetUserContributions lists a user's own contributions, most recent first,
// capped at limit.
func (c *Client) GetUserContributions(ctx context.Context, lang, username string, limit int) ([]UserContribution, error) {
	host := actionAPIHost(lang)
	params := map[string]string{
		"action":        "query",
		"list":          "usercontribs",
		"ucuser":        username,
		"uclimit":       fmt.Sprintf("%d", limit),
		"ucprop":        "ids|title|timestamp|sizediff",
		"ucdir":         "older",
		"format":        "json",
		"formatversion": "2",
	}

	resp, err := c.request(ctx, host, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(params).Get("/w/api.php")
	})
	if err != nil {
		return nil, fmt.Errorf("fetch contributions for %q (%s): %w", username, lang, err)
	}

	var contribs []UserContribution
	for _, c := range gjson.GetBytes(resp.Body(), "query.usercontribs").Array() {
		contribs = append(contribs, UserContribution{
			RevID:     c.Get("revid").Int(),
			Title:     c.Get("title").String(),
			Timestamp: c.Get("timestamp").String(),
			SizeDiff:  int(c.Get("sizediff").Int()),
		})
	}
	return contribs, nil
}
