// Package tabular parses the delimited company ESG metrics table into typed records.
package tabular

import (
	"strconv"
	"strings"

	"github.com/minji/esg-compass/internal/types"
)

// corpCodeColumn is the one column that is never parsed as a number:
// corporate codes carry leading zeros that numeric coercion would destroy.
const corpCodeColumn = "corp_code"

// Record is one row of the source table. The attribute set is open: any
// column present in the header is kept, columns the engine does not know
// about are simply never read. Values are either float64 (numeric fields)
// or string (text fields and empty cells).
type Record map[string]any

// CompanyName returns the company_name column as text.
func (r Record) CompanyName() string {
	return r.text("company_name")
}

// CorpCode returns the corp_code column, always as text with leading
// zeros intact.
func (r Record) CorpCode() string {
	return r.text(corpCodeColumn)
}

// RiskTag returns the company's risk category parsed from the Risk_Tag
// column. Missing or unrecognized tags read as neutral.
func (r Record) RiskTag() types.Risk {
	return types.ParseRiskTag(r.text("Risk_Tag"))
}

// Mentions returns the Gnn_mentions_per_1k_tokens metric for a goal id.
// Absent or non-numeric values read as 0.
func (r Record) Mentions(goalID int) float64 {
	return r.number(types.GoalCode(goalID) + "_mentions_per_1k_tokens")
}

// Sentiment returns the Gnn_sent_mean metric for a goal id. Absent or
// non-numeric values read as 0.
func (r Record) Sentiment(goalID int) float64 {
	return r.number(types.GoalCode(goalID) + "_sent_mean")
}

// ReferenceSentence returns the Gnn_reference_sentence text for a goal id,
// empty when absent.
func (r Record) ReferenceSentence(goalID int) string {
	return r.text(types.GoalCode(goalID) + "_reference_sentence")
}

func (r Record) text(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (r Record) number(key string) float64 {
	if v, ok := r[key].(float64); ok {
		return v
	}
	return 0
}

// Parse reads a delimited text table into records. The first line is the
// header; its trimmed fields become column keys. The delimiter is detected
// from the header line alone: tab when one is present, comma otherwise.
// Input with no data lines yields an empty slice.
func Parse(text string) []Record {
	lines := splitLines(text)
	if len(lines) < 2 {
		return []Record{}
	}

	delimiter := byte(',')
	if strings.ContainsRune(lines[0], '\t') {
		delimiter = '\t'
	}

	header := splitFields(lines[0], delimiter)
	for i, key := range header {
		header[i] = strings.TrimSpace(key)
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, delimiter)
		record := make(Record, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			raw := ""
			if i < len(fields) {
				raw = fields[i]
			}
			record[key] = typeField(key, raw)
		}
		records = append(records, record)
	}
	return records
}

// splitLines splits on \n, dropping \r and a trailing empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// splitFields splits one line on the delimiter, honoring quoted fields:
// a double quote toggles the in-quotes state and the delimiter only
// terminates a field outside quotes.
func splitFields(line string, delimiter byte) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			field.WriteByte(c)
		case c == delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}

// typeField applies the loader's typing convention: the corp_code column
// is always kept as trimmed text; any other field becomes a float64 when
// its cleaned value is non-empty and numeric, else stays text. An empty
// cell stays the empty string; the scoring engine owns the 0 fallback.
func typeField(key, raw string) any {
	cleaned := unquote(strings.TrimSpace(raw))
	if key == corpCodeColumn {
		return cleaned
	}
	if cleaned == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return n
	}
	return cleaned
}

// unquote strips a single pair of wrapping double quotes and collapses
// doubled internal quotes to one literal quote.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}
