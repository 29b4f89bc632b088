package query

import "strings"

// Questions matching this set skip retrieval and synthesis entirely and get
// an immediate branded greeting.
var greetingPhrases = map[string]struct{}{
	"hi":             {},
	"hi there":       {},
	"hello":          {},
	"hello there":    {},
	"hey":            {},
	"howdy":          {},
	"greetings":      {},
	"good morning":   {},
	"good afternoon": {},
	"good evening":   {},
}

// isGreeting reports whether the normalized question is a plain greeting.
func isGreeting(question string) bool {
	_, ok := greetingPhrases[normalizeGreeting(question)]
	return ok
}

// normalizeGreeting lowercases, collapses whitespace and drops trailing
// punctuation so "Hello!!" and "  hello " both match.
func normalizeGreeting(question string) string {
	s := strings.ToLower(strings.TrimSpace(question))
	s = strings.TrimRight(s, "!.?")
	return strings.Join(strings.Fields(s), " ")
}
