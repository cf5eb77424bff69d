// Package upstream fetches the raw registration dataset from the EJM support
// API. The service performs exactly one fetch at startup; a failure here is
// fatal because no view can be served without the base dataset.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appErrors "github.com/ejm-support/registrations-dashboard-api/pkg/errors"
)

// Record mirrors one upstream JSON object. Dates arrive as strings in a few
// ISO-adjacent layouts; tier may be fractional or absent.
type Record struct {
	EnrollDate    string   `json:"enrolldate"`
	LastLoginDate string   `json:"date_last_login"`
	DegreeType    *string  `json:"degreetype"`
	PrimaryField  *string  `json:"primary_field"`
	Country       *string  `json:"country"`
	Tier          *float64 `json:"tier"`
}

// Client performs the one-shot registrations fetch.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient constructs a client for the given registrations endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the full registration set. A single response is assumed to
// contain the whole dataset; there is no pagination or retry.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "build registrations request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "fetch registrations")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Wrap(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "fetch registrations",
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read registrations payload")
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode registrations payload")
	}

	return records, nil
}
