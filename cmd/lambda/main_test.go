package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"property-lookup/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlerUsesConfig(t *testing.T) {
	var gotPath, gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		w.Write([]byte(`{"property":[]}`))
	}))
	defer upstream.Close()

	cfg := &config.Config{}
	cfg.Attom.APIKey = "lambda-key"
	cfg.Attom.BaseURL = upstream.URL
	cfg.Attom.DefaultEndpoint = "/propertyapi/v1.0.0/property/basicprofile"
	cfg.Attom.Timeout = 5 * time.Second

	resp := newHandler(cfg).Handle(context.Background(), json.RawMessage(`{"address":"1 Main St"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	assert.Equal(t, "/propertyapi/v1.0.0/property/basicprofile", gotPath)
	assert.Equal(t, "lambda-key", gotKey)
}
