package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
)

// statusFor maps an error kind onto its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, common.ErrModelTimeout) {
		return http.StatusGatewayTimeout
	}
	switch common.CodeOf(err) {
	case common.CodeInvalidRequest, common.CodeEmptyFile:
		return http.StatusBadRequest
	case common.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case common.CodeUnsupportedFileType:
		return http.StatusUnsupportedMediaType
	case common.CodeUnreadableDocument, common.CodeNoExtractableText:
		return http.StatusUnprocessableEntity
	case common.CodeModelUnavailable:
		return http.StatusServiceUnavailable
	case common.CodeModelAuth, common.CodeModel:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	log := common.LoggerFromContext(c.Request.Context(), nil)
	if status >= http.StatusInternalServerError {
		log.Error("http.error", "status", status, "code", common.CodeOf(err), "error", err)
	} else {
		log.Info("http.rejected", "status", status, "code", common.CodeOf(err), "error", err)
	}
	c.AbortWithStatusJSON(status, errorBody{Error: common.MessageOf(err), Code: common.CodeOf(err)})
}
