package faq

import "strings"

// Match returns the answer of the first FAQ whose question's leading word
// appears in the message, case-insensitively. It reports false when nothing
// matches. The heuristic is deliberately simple: the stored question's first
// word acts as the keyword for the whole entry.
func Match(faqs []FAQ, message string) (string, bool) {
	q := strings.ToLower(message)
	for _, f := range faqs {
		key := strings.ToLower(strings.TrimSpace(f.Question))
		first, _, _ := strings.Cut(key, " ")
		if first == "" {
			continue
		}
		if strings.Contains(q, first) {
			return f.Answer, true
		}
	}
	return "", false
}
