// Package chunker splits arbitrary text into token-bounded, overlapping
// pieces. Ingestion chunks documents with it, and the query pipeline reuses
// its token counter to assemble the context window.
package chunker

import (
	"strings"
	"unicode"
)

const (
	// DefaultTargetTokens is the token budget for a single chunk.
	DefaultTargetTokens = 500
	// DefaultOverlapTokens is the amount of trailing text carried into the
	// next chunk, approximated at four characters per token.
	DefaultOverlapTokens = 50

	overlapCharsPerToken = 4
	ellipsis             = "..."
)

// Piece is one chunk of text produced by Chunk.
type Piece struct {
	Content    string
	TokenCount int
	Index      int
}

// Options control chunk sizing. Zero values fall back to the defaults.
type Options struct {
	TargetTokens  int
	OverlapTokens int
}

// Chunker splits text into token-bounded pieces.
type Chunker struct {
	counter TokenCounter
}

// New creates a Chunker that measures text with the given counter.
func New(counter TokenCounter) *Chunker {
	return &Chunker{counter: counter}
}

// Chunk splits text into pieces of at most opts.TargetTokens tokens,
// preferring paragraph boundaries and falling back to sentence boundaries
// when a single paragraph exceeds the budget. Consecutive pieces share an
// overlap tail so retrieval doesn't lose context at chunk edges. Piece
// indices start at 0 and restart on every call. Empty or whitespace-only
// input yields an empty slice.
//
// A piece may exceed the budget only when one sentence alone exceeds it;
// a unit landing exactly on the budget boundary is included, not deferred.
func (c *Chunker) Chunk(text string, opts Options) []Piece {
	target := opts.TargetTokens
	if target <= 0 {
		target = DefaultTargetTokens
	}
	overlap := opts.OverlapTokens
	if overlap < 0 {
		overlap = DefaultOverlapTokens
	}

	if strings.TrimSpace(text) == "" {
		return []Piece{}
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	st := &chunkState{
		counter: c.counter,
		target:  target,
		overlap: overlap,
	}

	for _, para := range paragraphs {
		paraTokens := c.counter.Count(para)
		if paraTokens > target {
			// Paragraph alone busts the budget: handle it sentence by sentence.
			for _, sentence := range splitSentences(para) {
				st.add(sentence, c.counter.Count(sentence), " ")
			}
			continue
		}
		st.add(para, paraTokens, "\n\n")
	}

	if len(st.buf) > 0 {
		st.flush("\n\n", true)
	}

	return st.pieces
}

// chunkState accumulates units until the next one would exceed the budget.
type chunkState struct {
	counter TokenCounter
	target  int
	overlap int

	buf    []string
	tokens int
	index  int
	pieces []Piece
}

// add appends one unit (paragraph or sentence), flushing first when the unit
// would push the running total past the budget.
func (st *chunkState) add(unit string, unitTokens int, sep string) {
	if st.tokens+unitTokens > st.target && len(st.buf) > 0 {
		st.flush(sep, false)
	}
	st.buf = append(st.buf, unit)
	st.tokens += unitTokens
}

// flush emits the buffered units as a piece. Unless final, it reseeds the
// buffer with the overlap tail of the flushed text.
func (st *chunkState) flush(sep string, final bool) {
	content := strings.Join(st.buf, sep)
	tokens := st.tokens
	if final {
		tokens = st.counter.Count(content)
	}
	st.pieces = append(st.pieces, Piece{
		Content:    content,
		TokenCount: tokens,
		Index:      st.index,
	})
	st.index++

	if final {
		st.buf = nil
		st.tokens = 0
		return
	}

	tail := overlapTail(st.buf[len(st.buf)-1], st.overlap)
	if tail == "" {
		st.buf = nil
		st.tokens = 0
		return
	}
	st.buf = []string{tail}
	st.tokens = st.counter.Count(tail)
}

// overlapTail returns the trailing ~overlapTokens worth of text, approximated
// by character length and marked with a leading ellipsis when cut.
func overlapTail(text string, overlapTokens int) string {
	if overlapTokens == 0 {
		return ""
	}
	charLimit := overlapTokens * overlapCharsPerToken
	runes := []rune(text)
	if len(runes) <= charLimit {
		return text
	}
	return ellipsis + string(runes[len(runes)-charLimit:])
}

// splitSentences breaks text on sentence-terminating punctuation followed by
// whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if isSentenceEnd(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
			// Skip the whitespace run between sentences.
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
