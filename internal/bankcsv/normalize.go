package bankcsv

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dayMonthYear matches D/M/Y dates with any run of non-digit separators
// ("30/09/2025", "30-9-25", "30.09. 2025") and a 2- or 4-digit year.
var dayMonthYear = regexp.MustCompile(`^(\d{1,2})\D+(\d{1,2})\D+(\d{4}|\d{2})$`)

// ParseDate parses a day-first date into canonical YYYY-MM-DD form.
// Two-digit years map to 2000+YY. Dates that do not exist on the calendar
// ("31/02/24") are rejected rather than clamped.
func ParseDate(s string) (string, bool) {
	m := dayMonthYear.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])

	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		year += 2000
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	// time.Date normalizes overflow (Feb 31 -> Mar 2/3), so a round-trip
	// mismatch means the calendar date never existed.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}

	return t.Format(time.DateOnly), true
}

// ParseAmount parses a European-formatted decimal: "1.234,56" -> 1234.56,
// "1234,56" -> 1234.56. When both separators appear the dot is a thousands
// separator; a lone comma is the decimal separator.
func ParseAmount(s string) (decimal.Decimal, bool) {
	clean := strings.Join(strings.Fields(s), "")
	if clean == "" {
		return decimal.Decimal{}, false
	}

	if strings.Contains(clean, ",") {
		if strings.Contains(clean, ".") {
			clean = strings.ReplaceAll(clean, ".", "")
		}

		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d, true
}

// NormalizeText trims and collapses every whitespace run to a single space.
// Descriptions must pass through here before entering a reconciliation key.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
