package transformers

import (
	"property-lookup/internal/models"
)

type AddressTransformer interface {
	ParseAddress(address string) (models.ParsedAddress, SplitRule)
}

type PropertyTransformer interface {
	SanitizeResponse(body []byte) (interface{}, error)
}
