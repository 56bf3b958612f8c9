package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const liftWingHost = "api.wikimedia.org"

// PredictRevertRisk calls the revertrisk-language-agnostic model for a
// single revision and returns the probability that it will be reverted.
func (c *Client) PredictRevertRisk(ctx context.Context, lang string, revID int64) (float64, error) {
	return c.predict(ctx, "revertrisk-language-agnostic", lang, revID, "output.probabilities.true")
}

// PredictReadability calls the readability model for a single revision.
func (c *Client) PredictReadability(ctx context.Context, lang string, revID int64) (float64, error) {
	return c.predict(ctx, "readability", lang, revID, "output.score")
}

// PredictReferenceRisk calls the reference-risk model for a single
// revision.
func (c *Client) PredictReferenceRisk(ctx context.Context, lang string, revID int64) (float64, error) {
	return c.predict(ctx, "reference-risk", lang, revID, "output.score")
}

func (c *Client) predict(ctx context.Context, model, lang string, revID int64, scorePath string) (float64, error) {
	path := fmt.Sprintf("/service/lw/inference/v1/models/%s:predict", model)
	body := map[string]any{"rev_id": revID, "lang": lang}

	resp, err := c.request(ctx, liftWingHost, func(r *resty.Request) (*resty.Response, error) {
		return r.SetHeader("Content-Type", "application/json").SetBody(body).Post(path)
	})
	if err != nil {
		return 0.0, fmt.Errorf("predict %s for rev %d (%s): %w", model, revID, lang, err)
	}

	return gjson.GetBytes(resp.Body(), scorePath).Float(), nil
}
