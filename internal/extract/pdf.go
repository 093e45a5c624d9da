package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
)

// PageSource is the page-level view of an opened PDF. Pages are 1-indexed.
type PageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

// ExtractPDFText concatenates the text of every page in page order, joined by the
// configured separator. Encrypted and image-only PDFs yield an empty Text, not an error.
// Bytes that do not parse as a PDF at all are an UnreadableDocument error.
func (e *Extractor) ExtractPDFText(ctx context.Context, data []byte) (PDFDocument, error) {
	if len(data) == 0 {
		return PDFDocument{}, common.EmptyFileError()
	}
	src, err := e.openPDF(data)
	if errors.Is(err, pdf.ErrInvalidPassword) {
		common.LoggerFromContext(ctx, e.logger).Warn("extract.pdf.encrypted")
		return PDFDocument{Warnings: []string{"encrypted"}}, nil
	}
	if err != nil {
		return PDFDocument{}, common.UnreadableDocumentError(err)
	}

	n := src.NumPage()
	if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
		n = e.cfg.MaxPages
	}

	pages := make([]string, 0, n)
	var warns []string
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return PDFDocument{}, err
		}
		txt, err := src.PageText(i)
		if err != nil {
			// keep the slot so page order is unchanged
			warns = append(warns, fmt.Sprintf("page %d: %v", i, err))
			txt = ""
		}
		pages = append(pages, Normalize(txt))
	}

	return PDFDocument{
		Text:     strings.TrimSpace(strings.Join(pages, e.cfg.PageSeparator)),
		Pages:    n,
		Warnings: warns,
	}, nil
}

type pdfPages struct {
	r *pdf.Reader
}

func (p pdfPages) NumPage() int { return p.r.NumPage() }

func (p pdfPages) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page text: %v", r)
		}
	}()
	page := p.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// openPDF wraps the pdf reader; the library panics on some malformed inputs.
func openPDF(data []byte) (src PageSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("open pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return pdfPages{r: r}, nil
}
