package actdex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Health fetches the aggregated health report. A degraded report is data,
// not an error: the server's 503 still carries a decodable body.
func (c *Client) Health(ctx context.Context) (hs HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return HealthStatus{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("actdex: GET /health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthStatus{}, decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("actdex: decode response: %w", err)
	}
	return hs, nil
}
