package reviews

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ExportMeta carries the case context rendered into an exported document.
type ExportMeta struct {
	CompanyName   string
	CaseReference string
	Title         string
}

// currencyFields lists the draft fields rendered as monetary amounts.
var currencyFields = map[string]bool{
	"book_value":           true,
	"estimated_to_realise": true,
	"realised_to_date":     true,
	"estimated_costs":      true,
	"wip_to_date":          true,
	"time_costs_to_date":   true,
	"fees_drawn":           true,
	"receipts_to_date":     true,
	"tlr_hmrc_owed":        true,
	"tlr_vat_position":     true,
	"tlr_paye_position":    true,
	"unsecured_estimate":   true,
}

// ExportHTML renders the draft as a complete, self-contained, printable
// HTML document. Pure and synchronous: no network access and no
// dependency on save state; the in-memory draft is exported whether or
// not it has been persisted. Every interpolated value is escaped and
// guarded against absence, so the output never contains the literal
// strings "undefined" or "null". User-entered newlines in free text are
// preserved via pre-wrap rendering.
func ExportHTML(meta ExportMeta, draft Draft, reviewDate *string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(meta.Title))
	b.WriteString("<style>\n")
	b.WriteString(exportStyles)
	b.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(meta.Title))
	b.WriteString("<table class=\"meta\">\n")
	writeMetaRow(&b, "Company", displayText(meta.CompanyName))
	writeMetaRow(&b, "Case Reference", displayText(meta.CaseReference))
	writeMetaRow(&b, "Review Date", FormatDisplayDate(reviewDate))
	b.WriteString("</table>\n")

	for _, section := range slices.Sorted(maps.Keys(draft)) {
		writeSection(&b, section, draft[section])
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeMetaRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><th>%s</th><td>%s</td></tr>\n",
		html.EscapeString(label), html.EscapeString(value))
}

func writeSection(b *strings.Builder, name string, content any) {
	fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(humanize(name)))

	switch t := content.(type) {
	case map[string]any:
		b.WriteString("<table class=\"fields\">\n")
		for _, field := range slices.Sorted(maps.Keys(t)) {
			fmt.Fprintf(b, "<tr><th>%s</th><td class=\"value\">%s</td></tr>\n",
				html.EscapeString(humanize(field)),
				html.EscapeString(displayValue(field, t[field])))
		}
		b.WriteString("</table>\n")
	case []any:
		writeLineItems(b, t)
	default:
		fmt.Fprintf(b, "<p class=\"value\">%s</p>\n",
			html.EscapeString(displayValue(name, t)))
	}
}

func writeLineItems(b *strings.Builder, items []any) {
	if len(items) == 0 {
		b.WriteString("<p class=\"value\">N/A</p>\n")
		return
	}

	// Column order comes from the first row so all rows align.
	first, ok := items[0].(map[string]any)
	if !ok {
		b.WriteString("<p class=\"value\">N/A</p>\n")
		return
	}

	columns := slices.Sorted(maps.Keys(first))

	b.WriteString("<table class=\"items\">\n<tr>")
	for _, col := range columns {
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(humanize(col)))
	}
	b.WriteString("</tr>\n")

	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		b.WriteString("<tr>")
		for _, col := range columns {
			fmt.Fprintf(b, "<td class=\"value\">%s</td>",
				html.EscapeString(displayValue(col, row[col])))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}

// displayValue renders a field value for export, substituting the
// field-appropriate placeholder for absent values.
func displayValue(field string, value any) string {
	if strings.HasSuffix(field, "_date") || strings.HasSuffix(field, "_due") {
		return formatDateValue(value)
	}
	if currencyFields[field] {
		return FormatCurrency(value)
	}

	switch t := value.(type) {
	case nil:
		return "N/A"
	case string:
		return displayText(t)
	default:
		return displayText(fmt.Sprint(t))
	}
}

func displayText(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func formatDateValue(value any) string {
	s, ok := value.(string)
	if !ok || s == "" {
		return "Not specified"
	}
	return FormatDisplayDate(&s)
}

// FormatDisplayDate converts a stored ISO calendar date to its long
// display form (day, full month name, four-digit year), or "Not
// specified" when absent or unparseable.
func FormatDisplayDate(iso *string) string {
	if iso == nil || *iso == "" {
		return "Not specified"
	}

	t, err := time.Parse("2006-01-02", *iso)
	if err != nil {
		return "Not specified"
	}
	return t.Format("2 January 2006")
}

// FormatCurrency renders a monetary value with the currency symbol and
// exactly two decimal places, defaulting to 0.00 when absent or
// unparseable.
func FormatCurrency(value any) string {
	var amount float64

	switch t := value.(type) {
	case float64:
		amount = t
	case int:
		amount = float64(t)
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(t, "£"), ",", ""))
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return "£0.00"
		}
		amount = parsed
	default:
		return "£0.00"
	}

	return fmt.Sprintf("£%.2f", amount)
}

func humanize(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		switch w {
		case "tlr", "vat", "paye", "hmrc", "wip":
			words[i] = strings.ToUpper(w)
		default:
			if w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
	}
	return strings.Join(words, " ")
}

const exportStyles = `body { font-family: Georgia, serif; margin: 2.5rem; color: #1a1a1a; }
h1 { font-size: 1.5rem; border-bottom: 2px solid #1a1a1a; padding-bottom: 0.5rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; }
table { border-collapse: collapse; width: 100%; margin-top: 0.5rem; }
th { text-align: left; font-weight: 600; padding: 0.35rem 0.75rem 0.35rem 0; vertical-align: top; }
td { padding: 0.35rem 0; vertical-align: top; }
.items th, .items td { border: 1px solid #ccc; padding: 0.35rem 0.5rem; }
.meta th { width: 12rem; }
.fields th { width: 16rem; }
.value { white-space: pre-wrap; }
@media print { body { margin: 1rem; } }
`
