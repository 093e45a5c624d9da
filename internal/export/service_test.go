package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-analyzer/internal/llm"
)

func TestInvoicesXLSX(t *testing.T) {
	vendor, total := "ABC Seller", "530.00"
	rec := llm.InvoiceRecord{Vendor: &vendor, TotalAmount: &total, Valid: true}

	b, err := NewService(nil).InvoicesXLSX(context.Background(), rec)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, llm.InvoiceFields, rows[0])

	require.Equal(t, "ABC Seller", rows[1][0])
	require.Equal(t, "", rows[1][1])
	require.Equal(t, "530.00", rows[1][4])
	require.Equal(t, "TRUE", rows[1][6])
}

func TestInvoicesXLSX_HeaderOnly(t *testing.T) {
	b, err := NewService(nil).InvoicesXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
