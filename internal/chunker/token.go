package chunker

// EstimateTokens gives a rough token count using the ~4 chars/token heuristic,
// rounded up. The estimate is not tied to any specific tokenizer vocabulary.
// It is the only size measure the chunker uses, so all size decisions stay
// deterministic.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
