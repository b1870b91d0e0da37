package services

import (
	"context"
	"net/http"
	"strings"

	apperrors "property-lookup/internal/errors"
	"property-lookup/internal/models"
	"property-lookup/internal/transformers"
	"property-lookup/internal/validators"
	"property-lookup/pkg/attom"
	"property-lookup/pkg/logger"
	"property-lookup/pkg/metrics"
)

// PropertySource fetches a raw provider response for an address.
type PropertySource interface {
	FetchProperty(ctx context.Context, endpoint string, addr models.ParsedAddress) (*attom.Response, error)
}

type LookupService struct {
	source          PropertySource
	addrTrans       transformers.AddressTransformer
	propTrans       transformers.PropertyTransformer
	validator       validators.LookupValidator
	defaultEndpoint string
}

func NewLookupService(
	source PropertySource,
	addrTrans transformers.AddressTransformer,
	propTrans transformers.PropertyTransformer,
	validator validators.LookupValidator,
	defaultEndpoint string,
) *LookupService {
	return &LookupService{
		source:          source,
		addrTrans:       addrTrans,
		propTrans:       propTrans,
		validator:       validator,
		defaultEndpoint: defaultEndpoint,
	}
}

// Lookup validates req, splits its address and fetches the property.
// Every failure is returned as an *apperrors.AppError.
func (s *LookupService) Lookup(ctx context.Context, req *models.LookupRequest) (*models.LookupResult, error) {
	if err := s.validator.ValidateLookup(req); err != nil {
		return nil, err
	}

	parsed, rule := s.addrTrans.ParseAddress(req.Address)
	metrics.AddressSplitTotal.WithLabelValues(string(rule)).Inc()
	logger.GlobalLogger.Printf("Parsed address: rule=%s, address1=%q, address2=%q", rule, parsed.Address1, parsed.Address2)

	endpoint := strings.TrimSpace(req.Endpoint)
	if endpoint == "" {
		endpoint = s.defaultEndpoint
	}

	resp, err := s.source.FetchProperty(ctx, endpoint, parsed)
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.GlobalLogger.Errorf("ATTOM lookup failed: endpoint=%s, status=%d", endpoint, resp.StatusCode)
		return nil, apperrors.NewUpstreamError(resp.StatusCode, string(resp.Body))
	}

	data, err := s.propTrans.SanitizeResponse(resp.Body)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to parse ATTOM response: endpoint=%s, error=%v", endpoint, err)
		return nil, apperrors.NewResponseParseError(err)
	}

	return &models.LookupResult{Data: data, Parsed: parsed}, nil
}
