package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Error codes, one per failure kind a lookup can end in.
const (
	ErrCodeMalformedRequest = "MALFORMED_REQUEST"
	ErrCodeMissingAddress   = "MISSING_ADDRESS"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeResponseParse    = "RESPONSE_PARSE_ERROR"
	ErrCodeTransport        = "TRANSPORT_ERROR"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

func NewMalformedRequest(err error) *AppError {
	return NewAppError(detail(err), MsgMalformedRequest, ErrCodeMalformedRequest, http.StatusBadRequest, err)
}

func NewMissingAddress() *AppError {
	return NewAppError("address is empty or absent", MsgMissingAddress, ErrCodeMissingAddress, http.StatusBadRequest, nil)
}

// NewUpstreamError keeps the provider's status and raw body; the body is
// relayed to the caller verbatim.
func NewUpstreamError(status int, body string) *AppError {
	return NewAppError(body, fmt.Sprintf(MsgUpstreamStatus, status), ErrCodeUpstream, status, nil)
}

func NewResponseParseError(err error) *AppError {
	return NewAppError(detail(err), MsgResponseParse, ErrCodeResponseParse, http.StatusInternalServerError, err)
}

func NewTransportError(err error) *AppError {
	return NewAppError(detail(err), MsgTransport, ErrCodeTransport, http.StatusInternalServerError, err)
}

func detail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
