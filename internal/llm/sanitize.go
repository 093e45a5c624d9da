package llm

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ProjectInvoice coerces a decoded model object onto the seven record keys.
// Unknown keys are ignored. The returned notes list every key that was coerced or dropped.
func ProjectInvoice(m map[string]any) (InvoiceRecord, []string) {
	var notes []string
	str := func(key string) *string {
		v, present := m[key]
		if !present {
			return nil
		}
		s, note := coerceString(key, v)
		if note != "" {
			notes = append(notes, key+"("+note+")")
		}
		return s
	}

	rec := InvoiceRecord{
		Vendor:        str(FieldVendor),
		InvoiceNumber: str(FieldInvoiceNumber),
		InvoiceDate:   str(FieldInvoiceDate),
		DueDate:       str(FieldDueDate),
		TotalAmount:   str(FieldTotalAmount),
		Currency:      str(FieldCurrency),
	}
	if rec.Currency != nil {
		up := strings.ToUpper(*rec.Currency)
		rec.Currency = &up
	}

	if v, present := m[FieldValid]; present {
		valid, note := coerceBool(v)
		rec.Valid = valid
		if note != "" {
			notes = append(notes, FieldValid+"("+note+")")
		}
	}

	for k := range m {
		if !slices.Contains(InvoiceFields, k) {
			notes = append(notes, k+"(unknown)")
		}
	}
	return rec, notes
}

func coerceString(key string, v any) (*string, string) {
	switch t := v.(type) {
	case nil:
		return nil, ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" || strings.EqualFold(s, "null") {
			return nil, "empty"
		}
		return &s, ""
	case json.Number:
		s := t.String()
		if key == FieldTotalAmount {
			if f, err := t.Float64(); err == nil {
				s = fmt.Sprintf("%.2f", f)
			}
		}
		return &s, "number"
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		if key == FieldTotalAmount {
			s = fmt.Sprintf("%.2f", t)
		}
		return &s, "number"
	case bool:
		s := strconv.FormatBool(t)
		return &s, "bool"
	default:
		return nil, "type"
	}
}

func coerceBool(v any) (bool, string) {
	switch t := v.(type) {
	case bool:
		return t, ""
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, "string"
		case "false":
			return false, "string"
		}
		return false, "type"
	case json.Number:
		return t.String() == "1", "number"
	case float64:
		return t == 1, "number"
	default:
		return false, "type"
	}
}
