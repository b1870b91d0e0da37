package attom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"property-lookup/internal/models"
	"property-lookup/pkg/logger"
	"property-lookup/pkg/metrics"

	"github.com/google/go-querystring/query"
)

// Response is the provider's answer before any interpretation.
type Response struct {
	StatusCode int
	Body       []byte
}

// NormalizeEndpoint makes sure the endpoint is an absolute path.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return endpoint
}

// BuildURL joins the base URL, endpoint path and the address query. A query
// string carried by the endpoint is kept; address1 and address2 always come
// from addr.
func (c *Client) BuildURL(endpoint string, addr models.ParsedAddress) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid ATTOM base URL %q: %w", c.baseURL, err)
	}

	path, rawQuery, _ := strings.Cut(strings.TrimSpace(endpoint), "?")
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint query %q: %w", rawQuery, err)
	}

	addrParams, err := query.Values(addr)
	if err != nil {
		return "", fmt.Errorf("failed to encode address query: %w", err)
	}
	for key, values := range addrParams {
		params[key] = values
	}

	u := *base
	u.Path = strings.TrimRight(base.Path, "/") + NormalizeEndpoint(path)
	u.RawPath = ""
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// FetchProperty makes a single GET against endpoint. Non-200 answers are
// returned as a Response, not an error; err is set only when no response
// was received.
func (c *Client) FetchProperty(ctx context.Context, endpoint string, addr models.ParsedAddress) (*Response, error) {
	requestURL, err := c.BuildURL(endpoint, addr)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to create ATTOM request: endpoint=%s, error=%v", endpoint, err)
		return nil, fmt.Errorf("failed to create ATTOM request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("apikey", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.AttomRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		logger.GlobalLogger.Errorf("Failed to send ATTOM request: endpoint=%s, error=%v", endpoint, err)
		return nil, fmt.Errorf("failed to send ATTOM request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	metrics.AttomRequestDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(duration.Seconds())
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to read ATTOM response body: endpoint=%s, status=%s, error=%v", endpoint, resp.Status, err)
		return nil, fmt.Errorf("failed to read ATTOM response body: %w", err)
	}

	logger.GlobalLogger.Printf("ATTOM responded: endpoint=%s, status=%d, bytes=%d, latency=%v", endpoint, resp.StatusCode, len(body), duration)
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
