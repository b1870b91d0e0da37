package models

// ServiceName tags the request block of every lookup envelope.
const ServiceName = "property-lookup"

// LookupRequest is the caller's payload, from a gateway body or a direct invocation.
type LookupRequest struct {
	Address  string `json:"address"`
	Endpoint string `json:"endpoint,omitempty"`
}

// ParsedAddress is the two-field form ATTOM expects. Address2 may be empty.
type ParsedAddress struct {
	Address1 string `json:"address1" url:"address1"`
	Address2 string `json:"address2" url:"address2"`
}

// RequestInfo echoes what was asked for back to the caller.
type RequestInfo struct {
	Address       string         `json:"address"`
	ParsedAddress *ParsedAddress `json:"parsedAddress,omitempty"`
	Service       string         `json:"service"`
}

// Envelope wraps every lookup response body. Message is a pointer so an
// empty upstream body is still sent as "message": "".
type Envelope struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message *string      `json:"message,omitempty"`
	Request *RequestInfo `json:"request,omitempty"`
}

// LookupResult is a sanitized provider response plus the address it was fetched for.
type LookupResult struct {
	Data   interface{}
	Parsed ParsedAddress
}
