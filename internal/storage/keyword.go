package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Candidate rows fetched per keyword search before in-process ranking.
const keywordCandidateLimit = 200

var keywordStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "what": {}, "with": {},
}

// SearchKeyword runs a tenant-scoped lexical search over chunk content.
//
// SQLite narrows candidates with per-term LIKE matches under the tenant
// filter; ranking happens in process with a length-normalized term-frequency
// score. Results are vector IDs ordered by descending relevance, ties broken
// by insertion order, capped at k.
func (r *ChunkRepo) SearchKeyword(ctx context.Context, tenantID, query string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	terms := filterStopwords(tokenize(query))
	if len(terms) == 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)+2)
	args = append(args, tenantID)
	for _, term := range terms {
		conds = append(conds, "lower(content) LIKE ?")
		args = append(args, "%"+term+"%")
	}
	args = append(args, keywordCandidateLimit)

	rows, err := r.db.QueryContext(ctx,
		`SELECT vector_id, content FROM chunks
		WHERE tenant_id = ? AND (`+strings.Join(conds, " OR ")+`)
		ORDER BY chunk_index LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword candidates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	type scored struct {
		id    string
		score float64
	}
	var candidates []scored
	for rows.Next() {
		var id, content string
		if err := rows.Scan(&id, &content); err != nil {
			return nil, fmt.Errorf("failed to scan keyword candidate: %w", err)
		}
		if score := termFrequencyScore(terms, content); score > 0 {
			candidates = append(candidates, scored{id: id, score: score})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.id
	}
	return ids, nil
}

// termFrequencyScore computes a length-normalized term-frequency relevance
// score for a chunk relative to the query terms.
func termFrequencyScore(queryTerms []string, content string) float64 {
	contentTokens := tokenize(content)
	if len(contentTokens) == 0 {
		return 0
	}

	freq := make(map[string]int, len(contentTokens))
	for _, token := range contentTokens {
		freq[token]++
	}

	var matches int
	for _, term := range queryTerms {
		matches += freq[term]
	}

	return float64(matches) / (1 + float64(len(contentTokens)))
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func filterStopwords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := keywordStopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
