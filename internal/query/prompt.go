package query

import (
	"fmt"
	"strings"
)

const maxSuggestions = 2

// systemPrompt builds the grounding instructions for answer synthesis. The
// model is told to answer strictly from the supplied context and to fall
// back to the tenant's configured message otherwise.
func systemPrompt(brandName, tone, fallbackMessage, contextText string) string {
	return fmt.Sprintf(`You are a helpful assistant for %s.

INSTRUCTIONS:
- Answer questions ONLY using the provided context below
- If the answer is not in the context, say %q
- Never make up information or provide information not in the context
- Keep responses concise, clear, and helpful
- Tone: %s
- Do not mention that you are using "context" or "provided information"
- Respond naturally as if you know this information directly

CONTEXT:
%s
`, brandName, fallbackMessage, tone, contextText)
}

// suggestionPrompts builds the system and user messages for the follow-up
// suggestion call.
func suggestionPrompts(brandName, question, answer string) (string, string) {
	system := fmt.Sprintf("You are a helpful assistant for %s. "+
		"Based on the conversation, suggest 2 brief follow-up questions "+
		"the user might ask. Return only the questions, one per line, "+
		"no numbering or bullets.", brandName)
	user := fmt.Sprintf("User asked: %s\n\nAnswer provided: %s\n\nSuggest 2 follow-up questions:", question, answer)
	return system, user
}

// parseSuggestions splits model output into at most maxSuggestions non-empty
// lines.
func parseSuggestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
