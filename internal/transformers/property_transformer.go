package transformers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	attomIDField    = "attomId"
	propertyIDField = "propertyId"
)

type propertyTransformer struct{}

func NewPropertyTransformer() PropertyTransformer {
	return &propertyTransformer{}
}

// SanitizeResponse decodes an ATTOM response body and hides provider identifiers:
// status.attomId is dropped and property[].identifier.attomId becomes propertyId.
// Numbers are kept as json.Number so large ids survive re-encoding unchanged.
func (t *propertyTransformer) SanitizeResponse(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var parsed interface{}
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode ATTOM response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode ATTOM response: unexpected data after JSON value")
	}

	root, ok := parsed.(map[string]interface{})
	if !ok {
		return parsed, nil
	}

	if status, ok := root["status"].(map[string]interface{}); ok {
		delete(status, attomIDField)
	}

	if properties, ok := root["property"].([]interface{}); ok {
		for _, entry := range properties {
			prop, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			identifier, ok := prop["identifier"].(map[string]interface{})
			if !ok {
				continue
			}
			if id, ok := identifier[attomIDField]; ok {
				identifier[propertyIDField] = id
				delete(identifier, attomIDField)
			}
		}
	}

	return root, nil
}
