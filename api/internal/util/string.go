package util

import "strings"

// StripCodeFences removes a ``` fence around a model reply, including an
// optional language tag on the opening line (```json, ```text, ...).
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = rest
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], " :") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
