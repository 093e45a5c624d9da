package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-analyzer/constants"
	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
	"github.com/joseph-ayodele/invoice-analyzer/internal/export"
	"github.com/joseph-ayodele/invoice-analyzer/internal/invoice"
)

// multipartSlack covers boundaries and part headers on top of the file itself.
const multipartSlack = 64 << 10

// AnalyzeInvoice handles POST /analyze-invoice with a multipart "file" field.
// ?format=xlsx returns the record as a one-row workbook instead of JSON.
func (h *Handler) AnalyzeInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	log := common.LoggerFromContext(ctx, h.logger)

	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format != "" && format != "json" && format != "xlsx" {
		writeError(c, common.InvalidRequestError(`format must be "json" or "xlsx"`))
		return
	}

	limit := h.maxUpload + multipartSlack
	if c.Request.ContentLength > limit {
		writeError(c, common.FileTooLargeError(h.maxUpload))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			writeError(c, common.FileTooLargeError(h.maxUpload))
			return
		}
		writeError(c, common.InvalidRequestError(`multipart field "file" is required`))
		return
	}
	if fh.Size > h.maxUpload {
		writeError(c, common.FileTooLargeError(h.maxUpload))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, common.InvalidRequestError("could not read uploaded file"))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("http.upload.close_error", "error", err)
		}
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, common.InvalidRequestError("could not read uploaded file"))
		return
	}

	res, err := h.analyzer.Analyze(ctx, invoice.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header(HeaderInvoiceParse, res.ParseStatus())
	if format == "xlsx" {
		b, err := h.exporter.InvoicesXLSX(ctx, res.Record)
		if err != nil {
			writeError(c, common.WrapError(err, "export xlsx"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="invoice.xlsx"`)
		c.Data(http.StatusOK, export.ContentTypeXLSX, b)
		log.Debug("http.respond", "stage", constants.StageResponded, "format", "xlsx")
		return
	}
	c.JSON(http.StatusOK, res.Record)
	log.Debug("http.respond", "stage", constants.StageResponded, "format", "json")
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
