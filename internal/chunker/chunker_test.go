package chunker

import (
	"strings"
	"testing"
)

func TestApproxCounter_Count(t *testing.T) {
	counter := ApproxCounter{}

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "four chars", text: "abcd", want: 1},
		{name: "five chars rounds up", text: "abcde", want: 2},
		{name: "eight chars", text: "abcdefgh", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := counter.Count(tt.text); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c := New(ApproxCounter{})

	for _, text := range []string{"", "   ", "\n\n\n"} {
		pieces := c.Chunk(text, Options{})
		if len(pieces) != 0 {
			t.Errorf("Chunk(%q) returned %d pieces, want 0", text, len(pieces))
		}
	}
}

func TestChunk_SingleSmallParagraph(t *testing.T) {
	c := New(ApproxCounter{})

	pieces := c.Chunk("hello world", Options{})
	if len(pieces) != 1 {
		t.Fatalf("Chunk() returned %d pieces, want 1", len(pieces))
	}
	if pieces[0].Content != "hello world" {
		t.Errorf("Content = %q, want %q", pieces[0].Content, "hello world")
	}
	if pieces[0].Index != 0 {
		t.Errorf("Index = %d, want 0", pieces[0].Index)
	}
}

func TestChunk_IndicesAreSequentialFromZero(t *testing.T) {
	c := New(ApproxCounter{})

	// Each paragraph is ~25 tokens; a target of 30 forces multiple chunks.
	para := strings.Repeat("word ", 20)
	text := strings.Join([]string{para, para, para, para}, "\n\n")

	pieces := c.Chunk(text, Options{TargetTokens: 30, OverlapTokens: 0})
	if len(pieces) < 2 {
		t.Fatalf("Chunk() returned %d pieces, want at least 2", len(pieces))
	}
	for i, p := range pieces {
		if p.Index != i {
			t.Errorf("pieces[%d].Index = %d, want %d", i, p.Index, i)
		}
	}
}

func TestChunk_RespectsTokenBudget(t *testing.T) {
	counter := ApproxCounter{}
	c := New(counter)

	para := strings.Repeat("word ", 20)
	text := strings.Join([]string{para, para, para, para, para, para}, "\n\n")

	target := 60
	pieces := c.Chunk(text, Options{TargetTokens: target, OverlapTokens: 0})
	for i, p := range pieces {
		if p.TokenCount > target {
			t.Errorf("pieces[%d].TokenCount = %d exceeds target %d", i, p.TokenCount, target)
		}
	}
}

func TestChunk_ExactBoundaryUnitIsIncluded(t *testing.T) {
	counter := ApproxCounter{}
	c := New(counter)

	// Two paragraphs of exactly 10 tokens each against a 20-token target:
	// both land in one chunk because the budget check is strictly greater.
	para := strings.Repeat("abcd", 10) // 40 chars = 10 tokens
	text := para + "\n\n" + para

	pieces := c.Chunk(text, Options{TargetTokens: 20, OverlapTokens: 0})
	if len(pieces) != 1 {
		t.Fatalf("Chunk() returned %d pieces, want 1", len(pieces))
	}
	if !strings.Contains(pieces[0].Content, "\n\n") {
		t.Error("expected both paragraphs joined in one chunk")
	}
}

func TestChunk_OversizedParagraphFallsBackToSentences(t *testing.T) {
	c := New(ApproxCounter{})

	sentence := strings.Repeat("word ", 10) + "end."
	para := strings.Join([]string{sentence, sentence, sentence, sentence}, " ")

	pieces := c.Chunk(para, Options{TargetTokens: 20, OverlapTokens: 0})
	if len(pieces) < 2 {
		t.Fatalf("Chunk() returned %d pieces, want at least 2 for oversized paragraph", len(pieces))
	}
}

func TestChunk_OversizedSentenceStillEmitted(t *testing.T) {
	c := New(ApproxCounter{})

	// One sentence far beyond the budget with no break points: it must come
	// through as a single over-budget piece rather than being dropped.
	sentence := strings.Repeat("word ", 100)

	pieces := c.Chunk(sentence, Options{TargetTokens: 20, OverlapTokens: 0})
	if len(pieces) != 1 {
		t.Fatalf("Chunk() returned %d pieces, want 1", len(pieces))
	}
	if pieces[0].TokenCount <= 20 {
		t.Errorf("TokenCount = %d, expected over-budget piece", pieces[0].TokenCount)
	}
}

func TestChunk_OverlapCarriesTrailingText(t *testing.T) {
	c := New(ApproxCounter{})

	para := strings.Repeat("word ", 20)
	text := strings.Join([]string{para, para, para}, "\n\n")

	pieces := c.Chunk(text, Options{TargetTokens: 30, OverlapTokens: 5})
	if len(pieces) < 2 {
		t.Fatalf("Chunk() returned %d pieces, want at least 2", len(pieces))
	}

	// Every chunk after the first starts with the overlap tail of its
	// predecessor, marked with an ellipsis when cut mid-paragraph.
	for i := 1; i < len(pieces); i++ {
		if !strings.HasPrefix(pieces[i].Content, "...") {
			t.Errorf("pieces[%d] missing overlap ellipsis prefix: %q", i, pieces[i].Content[:20])
		}
	}
}

func TestChunk_ContentIsPreserved(t *testing.T) {
	c := New(ApproxCounter{})

	paras := []string{
		"The first paragraph talks about shipping.",
		"The second paragraph covers returns and refunds in detail.",
		"The third paragraph explains our warranty policy.",
	}
	text := strings.Join(paras, "\n\n")

	pieces := c.Chunk(text, Options{})
	joined := ""
	for _, p := range pieces {
		joined += p.Content + " "
	}
	for _, para := range paras {
		if !strings.Contains(joined, para) {
			t.Errorf("paragraph %q missing from chunk output", para)
		}
	}
}

func TestOverlapTail(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		overlapTokens int
		want          string
	}{
		{name: "zero overlap", text: "hello", overlapTokens: 0, want: ""},
		{name: "short text kept whole", text: "hello", overlapTokens: 5, want: "hello"},
		{name: "long text cut with ellipsis", text: strings.Repeat("a", 30), overlapTokens: 5, want: "..." + strings.Repeat("a", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlapTail(tt.text, tt.overlapTokens); got != tt.want {
				t.Errorf("overlapTail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentences",
			text: "First one. Second one! Third one?",
			want: []string{"First one.", "Second one!", "Third one?"},
		},
		{
			name: "no terminators",
			text: "just one run of words",
			want: []string{"just one run of words"},
		},
		{
			name: "period without following space is not a break",
			text: "Version 1.2 shipped. Done.",
			want: []string{"Version 1.2 shipped.", "Done."},
		},
		{
			name: "multiple spaces between sentences",
			text: "One.   Two.",
			want: []string{"One.", "Two."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("splitSentences() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
