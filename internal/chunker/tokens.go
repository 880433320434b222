package chunker

import "unicode/utf8"

// tokensPerChar approximates BPE tokenization at roughly four characters
// per token. The exact count does not matter; what matters is that the
// same text always yields the same count, so chunk boundaries are stable
// across runs.
const charsPerToken = 4

// CountTokens returns the approximate model-token length of text.
func CountTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}
