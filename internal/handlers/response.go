package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"image-search-api/internal/models"
	"image-search-api/pkg/lambda"
)

const (
	// MsgKeywordRequired is the 400 message for a missing or blank keyword
	MsgKeywordRequired = "Query parameter is required"

	// MsgNoRecords is the status returned for an empty notification batch
	MsgNoRecords = "No records to process"

	internalErrorPrefix = "Internal server error: "
	contentTypeJSON     = "application/json"
)

// fallbackBody is sent when an envelope cannot be serialized
var fallbackBody = []byte(`{"success":false,"error":"Internal server error"}`)

// SearchResponse is the success envelope of a search
type SearchResponse struct {
	Success bool                 `json:"success"`
	Images  []models.ImageResult `json:"images"`
}

// ErrorResponse is the failure envelope shared by every endpoint
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// IngestResponse is returned by the dev server's event endpoint
type IngestResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

func responseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                contentTypeJSON,
		"Access-Control-Allow-Origin": "*",
	}
}

// jsonResponse serializes payload, degrading to the fixed 500 body on failure
func jsonResponse(status int, payload interface{}) *lambda.Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return &lambda.Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    responseHeaders(),
			Body:       fallbackBody,
		}
	}
	return &lambda.Response{
		StatusCode: status,
		Headers:    responseHeaders(),
		Body:       body,
	}
}

func errorResponse(status int, message string) *lambda.Response {
	return jsonResponse(status, ErrorResponse{Success: false, Error: message})
}

// InternalError is the 500 envelope carrying err's message
func InternalError(err error) *lambda.Response {
	return errorResponse(http.StatusInternalServerError, internalErrorPrefix+err.Error())
}

// writeResponse copies a generic response onto a gin context
func writeResponse(c *gin.Context, resp *lambda.Response) {
	for key, value := range resp.Headers {
		c.Header(key, value)
	}
	c.Data(resp.StatusCode, contentTypeJSON, resp.Body)
}

// toRequest converts a gin request to the generic request the handlers take
func toRequest(c *gin.Context) *lambda.Request {
	query := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	headers := make(map[string]string)
	for key := range c.Request.Header {
		headers[key] = c.GetHeader(key)
	}

	params := make(map[string]string)
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	return &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     headers,
		QueryParams: query,
		PathParams:  params,
	}
}
