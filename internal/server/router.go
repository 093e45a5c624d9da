package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-analyzer/internal/export"
	"github.com/joseph-ayodele/invoice-analyzer/internal/invoice"
)

type Handler struct {
	analyzer  *invoice.Analyzer
	exporter  *export.Service
	maxUpload int64
	logger    *slog.Logger
}

func NewHandler(analyzer *invoice.Analyzer, exporter *export.Service, maxUpload int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if exporter == nil {
		exporter = export.NewService(logger)
	}
	return &Handler{analyzer: analyzer, exporter: exporter, maxUpload: maxUpload, logger: logger}
}

// NewRouter wires the HTTP routes. Set gin's mode before calling.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(requestID(h.logger), requestLogger(), recovery())

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.POST("/analyze-invoice", h.AnalyzeInvoice)
	return r
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "AI Invoice Analyzer running"})
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
