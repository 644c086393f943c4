// Package contract fills {{placeholder}} markers in contract templates
// from client data. Rendering to PDF happens on the backend; this side
// only prepares and previews the field values.
package contract

import (
	"regexp"
	"time"

	"github.com/nioxtec/facturer/internal/api"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Placeholders returns the distinct placeholder names of a template, in
// order of first appearance.
func Placeholders(template string) []string {
	var (
		names []string
		seen  = map[string]bool{}
	)

	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if seen[m[1]] {
			continue
		}

		seen[m[1]] = true
		names = append(names, m[1])
	}

	return names
}

// Fill substitutes placeholder values into a template. Placeholders with
// no value are left intact and reported in missing so the user can supply
// them before generating.
func Fill(template string, values map[string]string) (filled string, missing []string) {
	seen := map[string]bool{}

	filled = placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]

		value, ok := values[name]
		if !ok {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}

			return match
		}

		return value
	})

	return filled, missing
}

// CustomerFields maps a client record onto the placeholder names the
// standard templates use.
func CustomerFields(c api.Customer, now time.Time) map[string]string {
	return map[string]string{
		"nombre":    c.Name,
		"cif":       c.CIF,
		"email":     c.Email,
		"telefono":  c.Phone,
		"direccion": c.Address,
		"iban":      c.IBAN,
		"fecha":     now.Format("02/01/2006"),
	}
}
