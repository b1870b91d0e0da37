package errors

// Error texts placed in the envelope's "error" field.
const (
	MsgMalformedRequest = "Invalid request format"
	MsgMissingAddress   = "Missing required parameter: address"
	MsgUpstreamStatus   = "API returned status %d"
	MsgResponseParse    = "Failed to parse API response"
	MsgTransport        = "Request failed"
	MsgInternalError    = "Internal server error"
)
