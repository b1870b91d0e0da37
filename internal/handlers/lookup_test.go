package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"property-lookup/internal/services"
	"property-lookup/internal/transformers"
	"property-lookup/internal/validators"
	"property-lookup/pkg/attom"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefaultEndpoint = "/propertyapi/v1.0.0/property/detail"

const attomDetailBody = `{
	"status": {"version": "1.0.0", "code": 0, "msg": "SuccessWithResult", "total": 1, "attomId": 145423726},
	"property": [
		{
			"identifier": {"Id": 145423726, "fips": "06037", "apn": "4288-011-028", "attomId": 145423726},
			"address": {"oneLine": "120 FRASER AVE, SANTA MONICA, CA 90405", "line1": "120 FRASER AVE", "line2": "SANTA MONICA, CA 90405"}
		}
	]
}`

type upstreamRecorder struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (r *upstreamRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

func (r *upstreamRecorder) calls() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.requests...)
}

func newTestHandler(t *testing.T, status int, body string) (*LookupHandler, *upstreamRecorder) {
	t.Helper()
	rec := &upstreamRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return newHandlerFor(srv.URL), rec
}

func newHandlerFor(baseURL string) *LookupHandler {
	client := attom.NewClient("test-key", baseURL, 5*time.Second)
	svc := services.NewLookupService(
		client,
		transformers.NewAddressTransformer(),
		transformers.NewPropertyTransformer(),
		validators.NewLookupValidator(),
		testDefaultEndpoint,
	)
	return NewLookupHandler(svc)
}

func decodeEnvelope(t *testing.T, resp events.APIGatewayProxyResponse) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &env))
	return env
}

func gatewayEvent(t *testing.T, body string) json.RawMessage {
	t.Helper()
	event, err := json.Marshal(map[string]interface{}{"httpMethod": "POST", "body": body})
	require.NoError(t, err)
	return event
}

func TestHandlePreflight(t *testing.T) {
	h, rec := newTestHandler(t, http.StatusOK, attomDetailBody)

	for _, event := range []string{
		`{"httpMethod":"OPTIONS"}`,
		`{"httpMethod":"OPTIONS","body":"not json at all"}`,
		`{"httpMethod":"OPTIONS","address":"120 Fraser Ave, Santa Monica, CA 90405"}`,
	} {
		t.Run(event, func(t *testing.T) {
			resp := h.Handle(context.Background(), json.RawMessage(event))
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "", resp.Body)
			assert.Equal(t, map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
				"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
			}, resp.Headers)
		})
	}
	assert.Empty(t, rec.calls())
}

func TestHandleSuccess(t *testing.T) {
	tests := []struct {
		name         string
		event        json.RawMessage
		wantAddress1 string
		wantAddress2 string
		wantPath     string
	}{
		{
			name:         "gateway string body with commas",
			event:        gatewayEvent(t, `{"address":"120 Fraser Ave, Santa Monica, CA 90405"}`),
			wantAddress1: "120 Fraser Ave",
			wantAddress2: "Santa Monica, CA 90405",
			wantPath:     testDefaultEndpoint,
		},
		{
			name:         "gateway object body",
			event:        json.RawMessage(`{"body":{"address":"494 BROADWAY NEWPORT RI 02840"}}`),
			wantAddress1: "494 BROADWAY",
			wantAddress2: "NEWPORT RI 02840",
			wantPath:     testDefaultEndpoint,
		},
		{
			name:         "direct invocation",
			event:        json.RawMessage(`{"address":"494 BROADWAY NEWPORT RI 02840"}`),
			wantAddress1: "494 BROADWAY",
			wantAddress2: "NEWPORT RI 02840",
			wantPath:     testDefaultEndpoint,
		},
		{
			name:         "custom endpoint",
			event:        gatewayEvent(t, `{"address":"120 Fraser Ave, Santa Monica, CA 90405","endpoint":"/propertyapi/v1.0.0/avm/detail"}`),
			wantAddress1: "120 Fraser Ave",
			wantAddress2: "Santa Monica, CA 90405",
			wantPath:     "/propertyapi/v1.0.0/avm/detail",
		},
		{
			name:         "short address",
			event:        json.RawMessage(`{"address":"NEWPORT RI"}`),
			wantAddress1: "NEWPORT RI",
			wantAddress2: "",
			wantPath:     testDefaultEndpoint,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec := newTestHandler(t, http.StatusOK, attomDetailBody)

			resp := h.Handle(context.Background(), tt.event)
			require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

			calls := rec.calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantPath, calls[0].URL.Path)
			assert.Equal(t, tt.wantAddress1, calls[0].URL.Query().Get("address1"))
			assert.Equal(t, tt.wantAddress2, calls[0].URL.Query().Get("address2"))
			assert.Equal(t, "test-key", calls[0].Header.Get("apikey"))

			env := decodeEnvelope(t, resp)
			assert.Equal(t, true, env["success"])
			request := env["request"].(map[string]interface{})
			assert.Equal(t, "property-lookup", request["service"])
			assert.Equal(t, map[string]interface{}{
				"address1": tt.wantAddress1,
				"address2": tt.wantAddress2,
			}, request["parsedAddress"])
		})
	}
}

func TestHandleSanitizesResponse(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusOK, attomDetailBody)

	resp := h.Handle(context.Background(), gatewayEvent(t, `{"address":"120 Fraser Ave, Santa Monica, CA 90405"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	data := env["data"].(map[string]interface{})
	assert.NotContains(t, data["status"], "attomId")

	identifier := data["property"].([]interface{})[0].(map[string]interface{})["identifier"].(map[string]interface{})
	assert.NotContains(t, identifier, "attomId")
	assert.Equal(t, float64(145423726), identifier["propertyId"])
	assert.Equal(t, "120 Fraser Ave, Santa Monica, CA 90405", env["request"].(map[string]interface{})["address"])
}

func TestHandleDoesNotEscapeHTML(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusOK, `{"note":"<b>A & B</b>"}`)

	resp := h.Handle(context.Background(), json.RawMessage(`{"address":"1 Main St"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, `"note":"<b>A & B</b>"`)
}

func TestHandleValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		event       json.RawMessage
		wantError   string
		wantMessage string
	}{
		{
			name:      "empty body object",
			event:     gatewayEvent(t, `{}`),
			wantError: "Missing required parameter: address",
		},
		{
			name:      "blank address",
			event:     gatewayEvent(t, `{"address":"   "}`),
			wantError: "Missing required parameter: address",
		},
		{
			name:      "endpoint without address",
			event:     json.RawMessage(`{"endpoint":"/propertyapi/v1.0.0/avm/detail"}`),
			wantError: "Missing required parameter: address",
		},
		{
			name:      "body object without address",
			event:     json.RawMessage(`{"body":{"endpoint":"/x"}}`),
			wantError: "Missing required parameter: address",
		},
		{
			name:        "no request data",
			event:       json.RawMessage(`{}`),
			wantError:   "Invalid request format",
			wantMessage: "No request data provided",
		},
		{
			name:        "empty string body",
			event:       json.RawMessage(`{"httpMethod":"POST","body":""}`),
			wantError:   "Invalid request format",
			wantMessage: "No request data provided",
		},
		{
			name:      "body is not json",
			event:     gatewayEvent(t, `address=1 Main St`),
			wantError: "Invalid request format",
		},
		{
			name:      "body is a number",
			event:     json.RawMessage(`{"body":42}`),
			wantError: "Invalid request format",
		},
		{
			name:      "address is not a string",
			event:     gatewayEvent(t, `{"address":42}`),
			wantError: "Invalid request format",
		},
		{
			name:      "payload is not an object",
			event:     json.RawMessage(`["120 Fraser Ave"]`),
			wantError: "Invalid request format",
		},
		{
			name:      "payload is empty",
			event:     json.RawMessage(``),
			wantError: "Invalid request format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec := newTestHandler(t, http.StatusOK, attomDetailBody)

			resp := h.Handle(context.Background(), tt.event)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			assert.Empty(t, rec.calls())

			env := decodeEnvelope(t, resp)
			assert.Equal(t, false, env["success"])
			assert.Equal(t, tt.wantError, env["error"])
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, env["message"])
			}
		})
	}
}

func TestHandleUpstreamError(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusUnauthorized, `{"Response":{"status":{"code":"401","msg":"Invalid Parameter"}}}`)

	resp := h.Handle(context.Background(), gatewayEvent(t, `{"address":"494 BROADWAY NEWPORT RI 02840"}`))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "API returned status 401", env["error"])
	assert.Equal(t, `{"Response":{"status":{"code":"401","msg":"Invalid Parameter"}}}`, env["message"])
	assert.Equal(t, map[string]interface{}{
		"address": "494 BROADWAY NEWPORT RI 02840",
		"service": "property-lookup",
	}, env["request"])
}

func TestHandleUpstreamErrorWithEmptyBody(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusServiceUnavailable, "")

	resp := h.Handle(context.Background(), gatewayEvent(t, `{"address":"494 BROADWAY NEWPORT RI 02840"}`))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{
		"success": false,
		"error": "API returned status 503",
		"message": "",
		"request": {"address": "494 BROADWAY NEWPORT RI 02840", "service": "property-lookup"}
	}`, resp.Body)
}

func TestHandleResponseParseError(t *testing.T) {
	h, _ := newTestHandler(t, http.StatusOK, `<html>maintenance</html>`)

	resp := h.Handle(context.Background(), gatewayEvent(t, `{"address":"494 BROADWAY NEWPORT RI 02840"}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Failed to parse API response", env["error"])
	assert.NotEmpty(t, env["message"])
	assert.NotContains(t, env, "data")
}

func TestHandleTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	resp := newHandlerFor(baseURL).Handle(context.Background(), gatewayEvent(t, `{"address":"494 BROADWAY NEWPORT RI 02840"}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Request failed", env["error"])
	assert.NotEmpty(t, env["message"])
}

func TestRequestIDFrom(t *testing.T) {
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-123"})
	assert.Equal(t, "req-123", requestIDFrom(ctx))

	id := requestIDFrom(context.Background())
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, requestIDFrom(context.Background()))
}
