package api

import (
	"context"
	"net/http"
	"os"

	"property-lookup/internal/models"
	"property-lookup/internal/utils"
	"property-lookup/pkg/attom"
	"property-lookup/pkg/logger"
)

// FixtureClient answers property lookups from a JSON file on disk instead of ATTOM.
type FixtureClient struct {
	path   string
	status int
}

// NewFixtureClient creates a client that serves the file at path with status 200.
func NewFixtureClient(path string) *FixtureClient {
	return &FixtureClient{path: path, status: http.StatusOK}
}

// WithStatus makes the fixture answer with a different upstream status.
func (c *FixtureClient) WithStatus(status int) *FixtureClient {
	c.status = status
	return c
}

// FetchProperty returns the fixture file's bytes. The body is not parsed here,
// so a broken fixture surfaces the same way a broken ATTOM response would.
func (c *FixtureClient) FetchProperty(ctx context.Context, endpoint string, addr models.ParsedAddress) (*attom.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, utils.WrapError(err, "failed to read fixture %s", c.path)
	}

	logger.GlobalLogger.Debugf("Serving fixture: path=%s, endpoint=%s, address1=%s, address2=%s", c.path, endpoint, addr.Address1, addr.Address2)
	return &attom.Response{StatusCode: c.status, Body: data}, nil
}
