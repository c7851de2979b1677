package actdex

import (
	"context"
	"net/http"
	"time"
)

// Acts lists ingested acts with their stored page counts, sorted by name.
func (c *Client) Acts(ctx context.Context) (acts []ActInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("acts", start, err) }()

	var resp struct {
		Acts  []ActInfo `json:"acts"`
		Total int       `json:"total"`
	}
	if _, err = c.do(ctx, http.MethodGet, "/acts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Acts, nil
}
