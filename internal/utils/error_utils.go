package utils

import (
	"fmt"
	"strings"

	"property-lookup/internal/errors"
	"property-lookup/pkg/logger"
)

// LogAndMapError logs technical details and returns a user-friendly AppError.
// params are logged as key=value pairs.
func LogAndMapError(err error, operation string, params ...interface{}) *errors.AppError {
	appErr := errors.MapError(err)
	if appErr == nil {
		return nil
	}

	details := []string{
		"operation=" + operation,
		"code=" + appErr.Code,
	}
	for i := 0; i+1 < len(params); i += 2 {
		details = append(details, fmt.Sprintf("%v=%v", params[i], params[i+1]))
	}
	details = append(details, "technical_error="+appErr.TechnicalMessage)

	logger.GlobalLogger.Errorf("Operation failed: %s", strings.Join(details, ", "))
	return appErr
}

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}
