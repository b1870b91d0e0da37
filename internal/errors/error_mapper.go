package errors

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
)

// MapError converts any error into an AppError. AppErrors anywhere in the
// chain are returned as-is; network failures become transport errors.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	if IsTransport(err) {
		return NewTransportError(err)
	}

	return &AppError{
		TechnicalMessage: err.Error(),
		UserMessage:      MsgInternalError,
		Code:             ErrCodeInternal,
		HTTPStatus:       http.StatusInternalServerError,
		OriginalError:    err,
	}
}

// IsTransport reports whether err came from the network layer rather than the provider.
func IsTransport(err error) bool {
	var urlErr *url.Error
	var netErr net.Error
	switch {
	case stderrors.As(err, &urlErr), stderrors.As(err, &netErr):
		return true
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return true
	}
	return false
}
