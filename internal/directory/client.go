package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crosstrain/exchange/internal/identity"
)

// Client fetches the staff roster from a remote directory service. The
// directory is optional; when unconfigured the engine runs on the built-in
// roster alone.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

type rosterResponse struct {
	Staff []identity.StaffEntry `json:"staff"`
	Count int                   `json:"count"`
}

func NewClient(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchRoster retrieves the full staff list from the directory service
func (c *Client) FetchRoster(ctx context.Context) ([]identity.StaffEntry, error) {
	var response rosterResponse
	if err := c.makeRequest(ctx, "GET", "/staff", &response); err != nil {
		return nil, err
	}
	return response.Staff, nil
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, result interface{}) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
	}).Debug("Making directory request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"url":           url,
		"response_size": len(responseBody),
	}).Debug("Directory response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("directory request failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	if result != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
