package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ParseResult is the outcome of turning raw model content into a record.
type ParseResult struct {
	Record    InvoiceRecord
	Degraded  bool     // nothing usable could be parsed; Record is all nulls
	Recovered bool     // the object was cut out of surrounding prose or fences
	Notes     []string // coerced or dropped keys
	SchemaErr error    // non-nil when the projected record misses the schema; informational only
}

// ParseInvoice never fails: unparseable content yields a degraded record.
func ParseInvoice(raw []byte, logger *slog.Logger) ParseResult {
	if logger == nil {
		logger = slog.Default()
	}

	content := bytes.TrimSpace(raw)
	m, err := decodeObject(content)
	recovered := false
	if err != nil {
		if sub, ok := ExtractJSONObject(content); ok {
			if m, err = decodeObject(sub); err == nil {
				recovered = true
			}
		}
	}
	if err != nil {
		logger.Warn("llm.parse.degraded", "error", err, "content_len", len(content))
		return ParseResult{Record: DegradedRecord(), Degraded: true}
	}
	if recovered {
		logger.Warn("llm.parse.recovered", "content_len", len(content))
	}

	rec, notes := ProjectInvoice(m)
	if len(notes) > 0 {
		logger.Warn("llm.parse.coerced", "fields", notes)
	}
	schemaErr := ValidateRecord(rec)
	if schemaErr != nil {
		logger.Warn("llm.parse.schema_mismatch", "error", schemaErr)
	}

	return ParseResult{
		Record:    rec,
		Recovered: recovered,
		Notes:     notes,
		SchemaErr: schemaErr,
	}
}

// decodeObject strictly decodes a single JSON object with numbers kept as json.Number.
func decodeObject(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model json: %w", err)
	}
	if m == nil {
		return nil, errors.New("model json is not an object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after model json")
	}
	return m, nil
}
