package llm

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// It describes the projected record, so every key is required and nullable.
func BuildInvoiceJSONSchema() map[string]any {
	props := map[string]any{
		FieldVendor:        nullableString(nil),
		FieldInvoiceNumber: nullableString(nil),
		FieldInvoiceDate:   nullableString(map[string]any{"pattern": `^\d{4}-\d{2}-\d{2}$`}),
		FieldDueDate:       nullableString(map[string]any{"pattern": `^\d{4}-\d{2}-\d{2}$`}),
		FieldTotalAmount:   nullableString(map[string]any{"pattern": `^-?\d+(\.\d+)?$`}),
		FieldCurrency:      nullableString(map[string]any{"pattern": `^[A-Z]{3}$`}),
		FieldValid:         map[string]any{"type": "boolean"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             InvoiceFields,
	}
}

func nullableString(extra map[string]any) map[string]any {
	p := map[string]any{"type": []string{"string", "null"}}
	for k, v := range extra {
		p[k] = v
	}
	return p
}
