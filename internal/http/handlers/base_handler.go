// README: Base handler utilities (JSON helpers, body decoding, error messages).
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// Client-facing messages for failures that are not validation errors.
const (
	MsgBodyMustBeJSON   = "Request body must be JSON."
	MsgPlanFailed       = "An error occurred while generating the plan. Please try again."
	MsgRescheduleFailed = "An error occurred while rescheduling the plan. Please try again."
	MsgExportFailed     = "An error occurred while exporting the plan. Please try again."
)

var errNotObject = errors.New("request body is not a JSON object")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// decodeObject reads the body as a single JSON object. Numbers stay json.Number so
// field parsing can tell integers from other values.
func decodeObject(c *gin.Context) (map[string]any, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errNotObject
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}
