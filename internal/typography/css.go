package typography

import "strings"

// CSSVariables renders values as a CSS declaration block body, one
// `--typo-*` variable per recognised key. Sizes carry a px unit; values that
// fail validation fall back to the default.
func CSSVariables(values map[string]string) string {
	var b strings.Builder
	for _, spec := range specs {
		value, ok := values[string(spec.Key)]
		value = strings.TrimSpace(value)
		if !ok || value == "" || spec.Validate(value) != nil {
			value = spec.Default
		}
		if spec.kind == kindSize {
			value += "px"
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(spec.CSSVariable)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte(';')
	}
	return b.String()
}
