package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Lead is one completed order handoff, reported to the tracking endpoint.
type Lead struct {
	DishName        string `json:"dishName"`
	RestaurantName  string `json:"restaurantName"`
	RestaurantPhone string `json:"restaurantPhone"`
	UserEmail       string `json:"userEmail,omitempty"`
	Timestamp       string `json:"timestamp"`
	DishImageURL    string `json:"dishImageUrl,omitempty"`
	Area            string `json:"area,omitempty"`
}

// Client reports leads fire-and-forget: callers log failures and never
// surface them or block on the call.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Track(ctx context.Context, lead Lead) error {
	if c.endpoint == "" {
		return fmt.Errorf("lead tracking endpoint not configured")
	}

	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create lead request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to report lead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("lead tracking failed with status %d", resp.StatusCode)
	}

	return nil
}
