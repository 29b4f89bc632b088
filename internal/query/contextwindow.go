package query

import (
	"fmt"
	"strings"

	"answerdesk/internal/chunker"
	"answerdesk/internal/storage"
)

const contextSeparator = "\n\n---\n\n"

// buildContext assembles the prompt context from ranked chunks under a token
// budget. Each chunk is rendered with a source label so the model can cite
// it; the first chunk that would push the running total past the budget stops
// the assembly, preserving rank order. Returns the joined context and the
// chunks that made it in.
func buildContext(chunks []storage.ChunkRecord, budget int, counter chunker.TokenCounter) (string, []storage.ChunkRecord) {
	var (
		parts    []string
		included []storage.ChunkRecord
		used     int
	)

	for _, c := range chunks {
		part := renderChunk(c)
		cost := counter.Count(part)
		if used+cost > budget {
			break
		}
		parts = append(parts, part)
		included = append(included, c)
		used += cost
	}

	return strings.Join(parts, contextSeparator), included
}

// renderChunk labels a chunk with its source title. Untitled chunks go in
// as raw content.
func renderChunk(c storage.ChunkRecord) string {
	if c.SourceTitle == "" {
		return c.Content
	}
	return fmt.Sprintf("[Source: %s]\n%s", c.SourceTitle, c.Content)
}
