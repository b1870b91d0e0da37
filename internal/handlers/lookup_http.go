package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "property-lookup/internal/errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
)

// directInvocation mirrors the flat payload a direct Lambda invoke sends.
type directInvocation struct {
	HTTPMethod string `json:"httpMethod"`
	Address    string `json:"address,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
}

// Lookup serves POST and OPTIONS by wrapping the HTTP request in a gateway event.
func (h *LookupHandler) Lookup(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperrors.NewMalformedRequest(err))
		return
	}

	event, err := json.Marshal(events.APIGatewayProxyRequest{
		HTTPMethod: c.Request.Method,
		Path:       c.Request.URL.Path,
		Body:       string(body),
	})
	if err != nil {
		c.Error(err)
		return
	}

	WriteResponse(c, h.Handle(c.Request.Context(), event))
}

// LookupQuery serves GET ?address=&endpoint= as a direct invocation.
func (h *LookupHandler) LookupQuery(c *gin.Context) {
	event, err := json.Marshal(directInvocation{
		HTTPMethod: http.MethodGet,
		Address:    c.Query("address"),
		Endpoint:   c.Query("endpoint"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	WriteResponse(c, h.Handle(c.Request.Context(), event))
}

// WriteResponse copies a gateway response onto the gin writer.
func WriteResponse(c *gin.Context, resp events.APIGatewayProxyResponse) {
	for name, value := range resp.Headers {
		c.Header(name, value)
	}
	c.Status(resp.StatusCode)
	if resp.Body != "" {
		c.Writer.WriteString(resp.Body)
	}
}
