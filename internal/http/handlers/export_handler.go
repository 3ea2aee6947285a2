// README: Export handler for POST /export (txt or pdf download of a plan).
package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/modules/export"
	"wanderplan/internal/observability"
)

// Export handles POST /export.
func Export(c *gin.Context) {
	body, err := decodeObject(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, MsgBodyMustBeJSON)
		return
	}
	plan, _ := body["plan"].(string)
	format, ok := body["format"].(string)
	if raw, present := body["format"]; present && raw != nil && !ok {
		writeError(c, http.StatusBadRequest, export.ErrUnknownFormat.Error())
		return
	}

	source, _ := body["source"].(string)
	destination, _ := body["destination"].(string)

	doc, err := export.Render(export.Request{Plan: plan, Format: format, Source: source, Destination: destination})
	if err != nil {
		switch {
		case errors.Is(err, export.ErrMissingPlan), errors.Is(err, export.ErrUnknownFormat):
			writeError(c, http.StatusBadRequest, err.Error())
		default:
			observability.LoggerFromContext(c.Request.Context()).Error("export failed", "format", format, "error", err)
			writeError(c, http.StatusInternalServerError, MsgExportFailed)
		}
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
