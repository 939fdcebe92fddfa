package agent

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "email-unsubscriber/1.0"

// OneClickClient performs the RFC 8058 one-click unsubscribe POST. Compliant
// endpoints complete on a single form post, no browser needed.
type OneClickClient struct {
	client *http.Client
}

func NewOneClickClient(timeout time.Duration) *OneClickClient {
	return &OneClickClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Post submits the one-click form to the given endpoint.
func (c *OneClickClient) Post(endpoint string) error {
	form := url.Values{"List-Unsubscribe": {"One-Click"}}

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build one-click request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("one-click request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return fmt.Errorf("one-click endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
