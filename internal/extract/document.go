package extract

import (
	"github.com/joseph-ayodele/invoice-analyzer/constants"
)

// Document is the extracted content of one upload: either an ImageDocument or a PDFDocument.
// The interface is sealed; switch on the concrete type.
type Document interface {
	Format() constants.FileFormat
	isDocument()
}

// ImageDocument carries the image as unwrapped standard base64.
type ImageDocument struct {
	Base64    string
	MediaType string
	Size      int // raw byte count
}

func (ImageDocument) Format() constants.FileFormat { return constants.IMAGE }
func (ImageDocument) isDocument()                  {}

// DataURL renders the image as a data: URL for vision-capable chat messages.
func (d ImageDocument) DataURL() string {
	return "data:" + d.MediaType + ";base64," + d.Base64
}

// PDFDocument carries the concatenated page text.
type PDFDocument struct {
	Text     string
	Pages    int
	Warnings []string
}

func (PDFDocument) Format() constants.FileFormat { return constants.PDF }
func (PDFDocument) isDocument()                  {}
