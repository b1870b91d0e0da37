package handlers

import (
	"context"
	"encoding/json"

	"property-lookup/internal/services"
	"property-lookup/pkg/logger"
	"property-lookup/pkg/metrics"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

const outcomeSuccess = "success"
const outcomePreflight = "preflight"

type LookupHandler struct {
	lookupService *services.LookupService
}

func NewLookupHandler(lookupService *services.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

// Handle runs one invocation end to end. It never returns an error: every
// failure is rendered as an envelope with the matching status code.
func (h *LookupHandler) Handle(ctx context.Context, event json.RawMessage) events.APIGatewayProxyResponse {
	requestID := requestIDFrom(ctx)
	logger.GlobalLogger.Printf("Received event: request_id=%s, event=%s", requestID, string(event))

	inv, err := decodeInvocation(event)
	if err != nil {
		return h.fail(requestID, "", err)
	}

	if inv.isPreflight() {
		metrics.LookupsTotal.WithLabelValues(outcomePreflight).Inc()
		return PreflightResponse()
	}

	req, err := normalizeRequest(event, inv)
	if err != nil {
		return h.fail(requestID, "", err)
	}

	result, err := h.lookupService.Lookup(ctx, req)
	if err != nil {
		return h.fail(requestID, req.Address, err)
	}

	metrics.LookupsTotal.WithLabelValues(outcomeSuccess).Inc()
	logger.GlobalLogger.Printf("Lookup succeeded: request_id=%s, address=%q", requestID, req.Address)
	return SuccessResponse(req.Address, result)
}

func (h *LookupHandler) fail(requestID, address string, err error) events.APIGatewayProxyResponse {
	resp := ErrorResponse(address, err)
	metrics.LookupsTotal.WithLabelValues(outcomeOf(err)).Inc()
	logger.GlobalLogger.Errorf("Lookup failed: request_id=%s, status=%d, error=%v", requestID, resp.StatusCode, err)
	return resp
}

// requestIDFrom prefers the Lambda request id and falls back to a fresh UUID.
func requestIDFrom(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
