package utils

import "strings"

// Preview flattens s onto one line and cuts it to limit runes, so prompts and
// model replies stay readable inside a single log field.
func Preview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}
