package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
	"github.com/joseph-ayodele/invoice-analyzer/internal/llm"
)

// ContentTypeXLSX is the media type of the workbook returned by InvoicesXLSX.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheet = "Invoice"

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// InvoicesXLSX renders records as a workbook: a header row of the record keys, then one row per record.
// Null fields are left blank.
func (s *Service) InvoicesXLSX(ctx context.Context, records ...llm.InvoiceRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range llm.InvoiceFields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range records {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		for col, v := range []*string{r.Vendor, r.InvoiceNumber, r.InvoiceDate, r.DueDate, r.TotalAmount, r.Currency} {
			if v != nil {
				write(col+1, *v)
			}
		}
		write(7, r.Valid)
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // vendor
	_ = f.SetColWidth(sheet, "B", "B", 20) // invoice number
	_ = f.SetColWidth(sheet, "C", "F", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"req_id", common.RequestIDFromContext(ctx),
		"rows", len(records),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
