package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// utf8BOM keeps spreadsheet tools happy with non-latin text
const utf8BOM = "\uFEFF"

// escapeField doubles quotes and turns real newlines into the literal
// two-character sequences \n and \r, so every record stays on one line
func escapeField(value string) string {
	escaped := strings.ReplaceAll(value, `"`, `""`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	return escaped
}

// UnescapeField reverses escapeField for analysis-side re-parsing
func UnescapeField(value string) string {
	unescaped := strings.ReplaceAll(value, `\r`, "\r")
	unescaped = strings.ReplaceAll(unescaped, `\n`, "\n")
	return strings.ReplaceAll(unescaped, `""`, `"`)
}

// formatField renders any exported value as its CSV text. Tri-state booleans
// print as true/false/null; absent optional fields print empty.
func formatField(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case *bool:
		if v == nil {
			return "null"
		}
		return strconv.FormatBool(*v)
	case *int:
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// buildCSV renders rows of arbitrary values as a BOM-prefixed CSV document
// with every field double-quoted
func buildCSV(rows [][]interface{}) string {
	var sb strings.Builder
	sb.WriteString(utf8BOM)

	for i, row := range rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, field := range row {
			if j > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`"`)
			sb.WriteString(escapeField(formatField(field)))
			sb.WriteString(`"`)
		}
	}

	return sb.String()
}

// ParseCSV splits a buildCSV document back into raw (still escaped) field
// values. It exists for the analysis-side import path and for round-trip
// checks; it assumes the quoted one-record-per-line layout buildCSV emits.
func ParseCSV(data string) [][]string {
	data = strings.TrimPrefix(data, utf8BOM)
	if data == "" {
		return nil
	}

	lines := strings.Split(data, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		fields := splitQuotedLine(line)
		rows = append(rows, fields)
	}
	return rows
}

func splitQuotedLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"' && !inQuotes:
			inQuotes = true
		case r == '"' && inQuotes:
			if i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteString(`""`)
				i++
				continue
			}
			inQuotes = false
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())

	return fields
}
