package whatsapp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Render substitutes {{placeholder}} markers in a message template with the
// supplied values. Placeholders with no value are left intact so the caller
// can detect an incomplete render.
func Render(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})
}

// Placeholders returns the sorted set of placeholder names used by a template.
func Placeholders(template string) []string {
	seen := map[string]struct{}{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		seen[m[1]] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every placeholder in the template has a value.
func Validate(template string, values map[string]string) error {
	var missing []string
	for _, name := range Placeholders(template) {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing placeholder values: %s", strings.Join(missing, ", "))
	}
	return nil
}
