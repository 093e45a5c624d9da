package llm

import (
	"context"

	"github.com/joseph-ayodele/invoice-analyzer/constants"
)

// Invoice record keys, in response order.
const (
	FieldVendor        = "vendor"
	FieldInvoiceNumber = "invoice_number"
	FieldInvoiceDate   = "invoice_date"
	FieldDueDate       = "due_date"
	FieldTotalAmount   = "total_amount"
	FieldCurrency      = "currency"
	FieldValid         = "valid"
)

// InvoiceFields lists every key of InvoiceRecord.
var InvoiceFields = []string{
	FieldVendor,
	FieldInvoiceNumber,
	FieldInvoiceDate,
	FieldDueDate,
	FieldTotalAmount,
	FieldCurrency,
	FieldValid,
}

// InvoiceRecord is the fixed response shape. All seven keys are always serialized;
// missing values are null and Valid defaults to false.
type InvoiceRecord struct {
	Vendor        *string `json:"vendor"`
	InvoiceNumber *string `json:"invoice_number"`
	InvoiceDate   *string `json:"invoice_date"` // YYYY-MM-DD when the model could tell
	DueDate       *string `json:"due_date"`
	TotalAmount   *string `json:"total_amount"` // decimal text, kept opaque
	Currency      *string `json:"currency"`     // ISO 4217
	Valid         bool    `json:"valid"`
}

// DegradedRecord is returned when the model output could not be parsed at all.
func DegradedRecord() InvoiceRecord {
	return InvoiceRecord{}
}

type ExtractRequest struct {
	Format       constants.FileFormat
	Text         string // PDF route: extracted page text
	ImageDataURL string // image route: data:<media type>;base64,...
	MediaType    string
	FilenameHint string
}

//go:generate mockgen -source=contracts.go -destination=mocks/mock_field_extractor.go -package=mocks

// FieldExtractor is the remote model boundary. It returns the raw text content of the
// model's reply, unparsed.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) ([]byte, error)
}
