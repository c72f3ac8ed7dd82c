package observability

import "strings"

// Variant strips the parameter list from a command label:
// "INCREMENT(7)" becomes "INCREMENT".
func Variant(label string) string {
	if i := strings.IndexByte(label, '('); i > 0 {
		return label[:i]
	}
	return label
}
