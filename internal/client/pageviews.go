package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const pageviewsHost = "wikimedia.org"

// DailyViews is one day of the Pageviews REST API's per-article series.
type DailyViews struct {
	Date  string // YYYYMMDD
	Views int64
}

// GetDailyPageviews fetches the daily view-count series for title on the
// given language edition between start and end (both YYYY-MM-DD).
func (c *Client) GetDailyPageviews(ctx context.Context, lang, title, start, end string) ([]DailyViews, error) {
	article := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	startCompact := strings.ReplaceAll(start, "-", "")
	endCompact := strings.ReplaceAll(end, "-", "")

	path := fmt.Sprintf(
		"/api/rest_v1/metrics/pageviews/per-article/%s.wikipedia/all-access/user/%s/daily/%s/%s",
		lang, article, startCompact, endCompact,
	)

	resp, err := c.request(ctx, pageviewsHost, func(r *resty.Request) (*resty.Response, error) {
		return r.Get(path)
	})
	if err != nil {
		// Only transport failures and exhausted retries arrive here. A
		// missing-article 404 is not retried and comes back as a response
		// without "items", which parses below to an empty series.
		return nil, fmt.Errorf("fetch pageviews for %q (%s): %w", title, lang, err)
	}

	var series []DailyViews
	for _, item := range gjson.GetBytes(resp.Body(), "items").Array() {
		series = append(series, DailyViews{
			Date:  item.Get("timestamp").String()[:8],
			Views: item.Get("views").Int(),
		})
	}
	return series, nil
}
