package llm

import (
	"strings"

	"github.com/joseph-ayodele/invoice-analyzer/constants"
)

const fieldSpec = `Return a single JSON object with exactly these keys:
- vendor (string or null)
- invoice_number (string or null)
- invoice_date (string or null, format YYYY-MM-DD if possible)
- due_date (string or null, format YYYY-MM-DD if possible)
- total_amount (string or null, decimal such as "530.00", no currency symbol)
- currency (ISO 4217 code such as USD, BDT, EUR if visible; otherwise null)
- valid (true or false)`

const vendorRules = `The vendor is the store, company or seller issuing the invoice. It is usually the most prominent business name.
If words such as "Seller", "Store" or "Ltd" appear next to a name, that name is the vendor.
Ignore customer names, delivery names and payment gateways.`

const outputRules = `Rules:
- Use null when a field is missing or not clearly readable. Do not guess and do not invent values.
- Set valid to false when vendor or total_amount is missing.
- Output ONLY the JSON object: no explanations, no prose, no markdown, no code fences.`

// BuildSystemPrompt returns the system message for the route.
func BuildSystemPrompt(format constants.FileFormat) string {
	if format == constants.IMAGE {
		return "You are an invoice parser. You extract invoice data from images and answer with JSON only."
	}
	return "You are an invoice parser. You extract invoice data from text and answer with JSON only."
}

// BuildUserPrompt is the fixed instruction template with the route's content substituted.
// For the image route the picture itself travels as a separate message part.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	switch req.Format {
	case constants.IMAGE:
		b.WriteString("Read the attached invoice or receipt image, including logo text, the header at the top, metadata blocks, totals and the footer.\n")
		b.WriteString("Infer the vendor from visual cues: the logo and the header text at the top of the image.\n\n")
	default:
		b.WriteString("Extract the invoice fields purely from the invoice text below. Do not use any other source.\n")
		b.WriteString("The vendor is usually named in the first lines of the text.\n\n")
	}
	b.WriteString(vendorRules)
	b.WriteString("\n\n")
	b.WriteString(fieldSpec)
	b.WriteString("\n\n")
	b.WriteString(outputRules)

	if req.Format != constants.IMAGE {
		b.WriteString("\n\nINVOICE TEXT:\n")
		b.WriteString(req.Text)
	}
	return b.String()
}
