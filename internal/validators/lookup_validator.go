package validators

import (
	"strings"

	apperrors "property-lookup/internal/errors"
	"property-lookup/internal/models"
)

type lookupValidator struct{}

func NewLookupValidator() LookupValidator {
	return &lookupValidator{}
}

// ValidateLookup rejects requests without a usable address.
func (v *lookupValidator) ValidateLookup(req *models.LookupRequest) error {
	if req == nil || strings.TrimSpace(req.Address) == "" {
		return apperrors.NewMissingAddress()
	}
	return nil
}
