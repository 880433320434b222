// Package chunker splits markdown into token-bounded, overlapping chunks
// for embedding. Splitting prefers the largest semantic boundary that
// keeps a piece under budget: paragraph breaks first, then line breaks,
// sentence boundaries and spaces.
package chunker

import (
	"iter"
	"strings"
)

// separators ordered from best to worst semantic boundary. A span that
// contains none of them is emitted whole, even over budget, rather than
// being cut mid-word.
var separators = []string{"\n\n", "\n", ". ", " "}

// overlapRatio is the fraction of maxTokens carried over between
// consecutive chunks to preserve context across boundaries.
const overlapRatio = 0.1

// Split returns a lazy, restartable sequence of chunk texts, each at most
// maxTokens approximate tokens with ~10% overlap between neighbours.
// Empty input yields an empty sequence. Split has no side effects; ranging
// over the result twice produces identical chunks.
func Split(markdown string, maxTokens int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if strings.TrimSpace(markdown) == "" {
			return
		}
		s := splitter{
			maxTokens: maxTokens,
			overlap:   int(float64(maxTokens) * overlapRatio),
		}
		s.split(markdown, separators, yield)
	}
}

type splitter struct {
	maxTokens int
	overlap   int
}

// split recursively divides text on the first matching separator and
// merges the pieces back into budget-sized chunks, descending a separator
// level only for pieces that are still too large. Returns false when the
// consumer stopped the iteration.
func (s *splitter) split(text string, seps []string, yield func(string) bool) bool {
	sep, rest := pickSeparator(text, seps)
	if sep == "" {
		// No separator left: indivisible span, emit as-is.
		return yield(text)
	}

	parts := strings.Split(text, sep)

	var pending []string
	pendingTokens := 0
	fresh := false // pending holds content not yet emitted

	flush := func(carryOverlap bool) bool {
		joined := strings.TrimSpace(strings.Join(pending, sep))
		if fresh && joined != "" {
			if !yield(joined) {
				return false
			}
		}
		fresh = false
		if !carryOverlap {
			pending = nil
			pendingTokens = 0
			return true
		}
		// Keep a tail of parts worth at most the overlap budget as the
		// seed of the next chunk.
		var tail []string
		tailTokens := 0
		for i := len(pending) - 1; i >= 0; i-- {
			t := CountTokens(pending[i])
			if tailTokens+t > s.overlap {
				break
			}
			tail = append([]string{pending[i]}, tail...)
			tailTokens += t
		}
		pending = tail
		pendingTokens = tailTokens
		return true
	}

	for _, part := range parts {
		partTokens := CountTokens(part)

		if partTokens > s.maxTokens {
			if len(pending) > 0 && !flush(false) {
				return false
			}
			if !s.split(part, rest, yield) {
				return false
			}
			continue
		}

		if pendingTokens+partTokens > s.maxTokens && len(pending) > 0 {
			if !flush(true) {
				return false
			}
		}
		pending = append(pending, part)
		pendingTokens += partTokens
		fresh = true
	}

	return flush(false)
}

// pickSeparator returns the first separator present in text and the
// remaining lower-priority separators for recursion.
func pickSeparator(text string, seps []string) (string, []string) {
	for i, sep := range seps {
		if strings.Contains(text, sep) {
			return sep, seps[i+1:]
		}
	}
	return "", nil
}
