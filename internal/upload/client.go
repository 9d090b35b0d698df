package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts the canonical dish image to the remote image-hosting
// endpoint and returns the shareable URL. Failures degrade gracefully:
// message composition simply proceeds without an image link.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadRequest struct {
	Image string `json:"image"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (c *Client) Upload(ctx context.Context, imageJPEG []byte) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("upload endpoint not configured")
	}

	body, err := json.Marshal(uploadRequest{
		Image: base64.StdEncoding.EncodeToString(imageJPEG),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("image upload failed with status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	return parsed.URL, nil
}
