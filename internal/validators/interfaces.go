package validators

import (
	"property-lookup/internal/models"
)

type LookupValidator interface {
	ValidateLookup(req *models.LookupRequest) error
}
