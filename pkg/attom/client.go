package attom

import (
	"net/http"
	"time"
)

// Client calls the ATTOM property API with a fixed key and host.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new ATTOM client. A zero timeout leaves the request
// bounded only by its context.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// BaseURL returns the provider origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
