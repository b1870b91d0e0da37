package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "property-lookup/internal/errors"
	"property-lookup/internal/models"

	"github.com/aws/aws-lambda-go/events"
)

const (
	allowOrigin  = "*"
	allowHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
	allowMethods = "GET,POST,OPTIONS"
)

// fallbackBody is sent if an envelope cannot be encoded.
const fallbackBody = `{"success":false,"error":"Internal server error"}`

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  allowOrigin,
		"Access-Control-Allow-Headers": allowHeaders,
		"Access-Control-Allow-Methods": allowMethods,
	}
}

func jsonHeaders() map[string]string {
	headers := corsHeaders()
	headers["Content-Type"] = "application/json"
	return headers
}

// PreflightResponse answers a CORS preflight: 200, CORS headers, empty body.
func PreflightResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(),
		Body:       "",
	}
}

// SuccessResponse wraps a sanitized provider response.
func SuccessResponse(address string, result *models.LookupResult) events.APIGatewayProxyResponse {
	parsed := result.Parsed
	return buildResponse(http.StatusOK, models.Envelope{
		Success: true,
		Data:    result.Data,
		Request: &models.RequestInfo{
			Address:       address,
			ParsedAddress: &parsed,
			Service:       models.ServiceName,
		},
	})
}

// ErrorResponse renders any error as a failure envelope with the status its kind maps to.
func ErrorResponse(address string, err error) events.APIGatewayProxyResponse {
	appErr := apperrors.MapError(err)
	env := models.Envelope{
		Success: false,
		Error:   appErr.UserMessage,
	}

	message := appErr.TechnicalMessage
	switch appErr.Code {
	case apperrors.ErrCodeMissingAddress:
	case apperrors.ErrCodeUpstream:
		env.Message = &message
		env.Request = &models.RequestInfo{Address: address, Service: models.ServiceName}
	default:
		if message != "" {
			env.Message = &message
		}
	}

	return buildResponse(appErr.HTTPStatus, env)
}

func buildResponse(status int, env models.Envelope) events.APIGatewayProxyResponse {
	body, err := encodeEnvelope(env)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    jsonHeaders(),
			Body:       fallbackBody,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders(),
		Body:       body,
	}
}

func encodeEnvelope(env models.Envelope) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// outcomeOf labels an error for the lookups metric.
func outcomeOf(err error) string {
	return strings.ToLower(apperrors.MapError(err).Code)
}
