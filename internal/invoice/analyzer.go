package invoice

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/invoice-analyzer/constants"
	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
	"github.com/joseph-ayodele/invoice-analyzer/internal/extract"
	"github.com/joseph-ayodele/invoice-analyzer/internal/llm"
)

// Upload is one received file. Request-scoped; never persisted.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Result struct {
	Record    llm.InvoiceRecord
	Degraded  bool
	Format    constants.FileFormat
	MediaType string
}

// ParseStatus is the X-Invoice-Parse header value for r.
func (r Result) ParseStatus() string {
	if r.Degraded {
		return constants.ParseStatusDegraded
	}
	return constants.ParseStatusOK
}

// Analyzer runs classify, extract, prompt, model call and validation in sequence.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	extractor *extract.Extractor
	model     llm.FieldExtractor
	logger    *slog.Logger
}

func NewAnalyzer(extractor *extract.Extractor, model llm.FieldExtractor, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if extractor == nil {
		extractor = extract.NewExtractor(extract.Config{}, logger)
	}
	return &Analyzer{extractor: extractor, model: model, logger: logger}
}

// Analyze returns the invoice record for up. Errors are *common.AppError values; a model
// reply that cannot be parsed is not an error but a degraded Result.
func (a *Analyzer) Analyze(ctx context.Context, up Upload) (Result, error) {
	log := common.LoggerFromContext(ctx, a.logger)
	start := time.Now()
	stage := constants.StageReceived

	fail := func(err error) (Result, error) {
		log.Warn("invoice.analyze.failed",
			"stage", stage,
			"code", common.CodeOf(err),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, err
	}

	format, mediaType, ok := constants.ClassifyUpload(up.ContentType, up.Filename)
	if !ok {
		if mediaType == "" {
			mediaType = up.ContentType
		}
		return fail(common.UnsupportedFileTypeError(mediaType))
	}
	stage = constants.StageClassified
	log.Debug("invoice.analyze.classified", "format", format, "media_type", mediaType, "bytes", len(up.Data))

	doc, err := a.extractor.Extract(ctx, format, mediaType, up.Data)
	if err != nil {
		return fail(err)
	}
	stage = constants.StageExtracted

	req := llm.ExtractRequest{Format: format, MediaType: mediaType, FilenameHint: up.Filename}
	switch d := doc.(type) {
	case extract.ImageDocument:
		req.ImageDataURL = d.DataURL()
	case extract.PDFDocument:
		if d.Text == "" {
			return fail(common.NoExtractableTextError())
		}
		req.Text = d.Text
		log.Debug("invoice.analyze.pdf_text", "pages", d.Pages, "text_len", len(d.Text), "warnings", d.Warnings)
	}
	stage = constants.StagePrompted

	raw, err := a.model.ExtractFields(ctx, req)
	if err != nil {
		if common.CodeOf(err) == common.CodeInternal {
			err = common.ModelError("model call failed", err)
		}
		return fail(err)
	}
	stage = constants.StageModelCalled

	parsed := llm.ParseInvoice(raw, log)
	stage = constants.StageValidated

	res := Result{
		Record:    parsed.Record,
		Degraded:  parsed.Degraded,
		Format:    format,
		MediaType: mediaType,
	}
	log.Info("invoice.analyze.ok",
		"stage", stage,
		"format", format,
		"parse", res.ParseStatus(),
		"recovered", parsed.Recovered,
		"schema_ok", parsed.SchemaErr == nil,
		"valid", res.Record.Valid,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
