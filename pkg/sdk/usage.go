package actdex

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Usage returns an explanation usage report for the given period.
// An empty period uses the server default (month).
func (c *Client) Usage(ctx context.Context, period UsagePeriod) (report UsageReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, err) }()

	path := "/usage"
	if period != "" {
		path += "?period=" + url.QueryEscape(string(period))
	}
	_, err = c.do(ctx, http.MethodGet, path, nil, &report)
	return report, err
}
