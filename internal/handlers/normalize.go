package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "property-lookup/internal/errors"
	"property-lookup/internal/models"
)

var errNoRequestData = errors.New("No request data provided")

// invocation is the subset of an invocation payload the handler looks at.
// Gateway events carry httpMethod and body; direct invocations carry
// address and endpoint at the top level.
type invocation struct {
	HTTPMethod string          `json:"httpMethod"`
	Body       json.RawMessage `json:"body"`
}

func decodeInvocation(event json.RawMessage) (*invocation, error) {
	var inv invocation
	if err := json.Unmarshal(event, &inv); err != nil {
		return nil, apperrors.NewMalformedRequest(err)
	}
	return &inv, nil
}

func (inv *invocation) isPreflight() bool {
	return inv.HTTPMethod == "OPTIONS"
}

// normalizeRequest extracts the lookup request from either a body field
// (string or object) or the top-level fields of a direct invocation.
func normalizeRequest(event json.RawMessage, inv *invocation) (*models.LookupRequest, error) {
	body := bytes.TrimSpace(inv.Body)
	if hasBody(body) {
		req, err := decodeBody(body)
		if err != nil {
			return nil, apperrors.NewMalformedRequest(err)
		}
		return req, nil
	}

	var direct models.LookupRequest
	if err := json.Unmarshal(event, &direct); err != nil {
		return nil, apperrors.NewMalformedRequest(err)
	}
	if direct.Address != "" || direct.Endpoint != "" {
		return &direct, nil
	}

	return nil, apperrors.NewMalformedRequest(errNoRequestData)
}

// hasBody treats a missing, null or empty-string body as absent.
func hasBody(body []byte) bool {
	return len(body) > 0 && !bytes.Equal(body, []byte("null")) && !bytes.Equal(body, []byte(`""`))
}

func decodeBody(body []byte) (*models.LookupRequest, error) {
	var req models.LookupRequest
	switch body[0] {
	case '"':
		var text string
		if err := json.Unmarshal(body, &text); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return nil, err
		}
	case '{':
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("body must be a JSON string or object")
	}
	return &req, nil
}
