package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/invoice-analyzer/constants"
	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
)

type Config struct {
	PageSeparator string // default "\n"
	MaxPages      int    // 0 = no limit
}

type Extractor struct {
	cfg     Config
	openPDF func(data []byte) (PageSource, error)
	logger  *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PageSeparator == "" {
		cfg.PageSeparator = "\n"
	}
	return &Extractor{cfg: cfg, openPDF: openPDF, logger: logger}
}

// Extract picks a strategy based on the classified format.
func (e *Extractor) Extract(ctx context.Context, format constants.FileFormat, mediaType string, data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, common.EmptyFileError()
	}
	start := time.Now()
	logger := common.LoggerFromContext(ctx, e.logger)

	switch format {
	case constants.IMAGE:
		b64, err := EncodeImage(data)
		if err != nil {
			return nil, err
		}
		logger.Debug("extract.image.ok", "media_type", mediaType, "bytes", len(data), "b64_len", len(b64))
		return ImageDocument{Base64: b64, MediaType: mediaType, Size: len(data)}, nil
	case constants.PDF:
		doc, err := e.ExtractPDFText(ctx, data)
		if err != nil {
			logger.Warn("extract.pdf.failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
			return nil, err
		}
		logger.Info("extract.pdf.ok",
			"pages", doc.Pages,
			"text_len", len(doc.Text),
			"warnings", len(doc.Warnings),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return doc, nil
	default:
		logger.Error("unsupported extraction format", "format", format)
		return nil, common.UnsupportedFileTypeError(mediaType)
	}
}
