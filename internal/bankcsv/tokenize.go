package bankcsv

import "strings"

const expectedColumns = 8

// errEmptyCSV and friends are the user-facing structural error strings.
// The UI shows them verbatim, so they stay in Spanish.
const (
	errEmptyCSV   = "CSV vacío"
	errBadHeaders = "Encabezados inválidos o faltantes"
)

// headerPrefixes are the case-insensitive prefixes the first six header
// cells must carry for the file to look like a bank statement export.
var headerPrefixes = []string{"fecha", "fecha", "concepto", "importe", "moneda", "saldo"}

// delimiterCandidates is the sniffing preference order; earlier wins ties.
var delimiterCandidates = []rune{',', ';', '\t'}

// TokenizeResult carries the padded data rows plus any structural errors.
// Structural errors are non-fatal: a bad header still yields rows.
type TokenizeResult struct {
	Rows   [][]string
	Errors []string
}

// Tokenize splits raw statement text into 8-column data rows. It strips a
// leading BOM, drops blank lines, sniffs the delimiter from the header line
// and validates the header, then pads every data row to exactly
// expectedColumns fields.
func Tokenize(text string) TokenizeResult {
	text = strings.TrimPrefix(text, "\uFEFF")

	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return TokenizeResult{Errors: []string{errEmptyCSV}}
	}

	delim := sniffDelimiter(lines[0])

	var result TokenizeResult

	header := splitFields(lines[0], delim)
	if !validHeader(header) {
		result.Errors = append(result.Errors, errBadHeaders)
	}

	result.Rows = make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		result.Rows = append(result.Rows, pad(splitFields(line, delim)))
	}

	return result
}

func nonBlankLines(text string) []string {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}

// sniffDelimiter counts candidate delimiters in the header line and picks
// the most frequent one. Ties resolve to the earlier candidate.
func sniffDelimiter(header string) rune {
	best := delimiterCandidates[0]
	bestCount := strings.Count(header, string(best))

	for _, d := range delimiterCandidates[1:] {
		if count := strings.Count(header, string(d)); count > bestCount {
			best = d
			bestCount = count
		}
	}

	return best
}

// splitFields tokenizes one line honoring double-quote escaping: a delimiter
// inside an open quote is literal, and "" inside a quoted field is a single
// quote character.
func splitFields(line string, delim rune) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++

				continue
			}

			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}

	return append(fields, field.String())
}

func validHeader(header []string) bool {
	if len(header) < len(headerPrefixes)+1 {
		return false
	}

	for i, prefix := range headerPrefixes {
		cell := strings.ToLower(strings.TrimSpace(header[i]))
		if !strings.HasPrefix(cell, prefix) {
			return false
		}
	}

	return true
}

func pad(row []string) []string {
	for len(row) < expectedColumns {
		row = append(row, "")
	}

	return row
}
