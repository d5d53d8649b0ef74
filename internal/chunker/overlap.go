package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docslice/internal/docmodel"
)

// applyOverlap injects bounded context continuity between adjacent text and
// section chunks: the trailing OverlapSize-token slice of each chunk is
// prepended to the next one, which is marked is_overlap_extended. Table and
// figure chunks are never extended or sliced, the first chunk never receives
// a leading overlap, and the previous chunk is never revisited. The max size
// bound is advisory here: a chunk may exceed it by at most the overlap
// slice itself.
func applyOverlap(chunks []docmodel.Chunk, cfg Config) {
	for i := 1; i < len(chunks); i++ {
		prev := &chunks[i-1]
		next := &chunks[i]
		if !overlapEligible(prev.Type) || !overlapEligible(next.Type) {
			continue
		}

		slice := overlapSlice(prev.Content, cfg.OverlapSize, cfg.PreserveStructure)
		if slice == "" {
			continue
		}

		next.Content = slice + "\n\n" + next.Content
		next.TokenCount = EstimateTokens(next.Content)
		next.Metadata[docmodel.MetaIsOverlapExtended] = true
	}
}

func overlapEligible(t docmodel.ChunkType) bool {
	return t == docmodel.ChunkText || t == docmodel.ChunkSection
}

// overlapSlice extracts the trailing overlap window from text. With
// sentenceSafe it returns whole trailing sentences that fit the window,
// falling back to a word-boundary slice when not even one sentence fits;
// otherwise it slices on raw character count (rune-aligned).
func overlapSlice(text string, overlapTokens int, sentenceSafe bool) string {
	if overlapTokens <= 0 || text == "" {
		return ""
	}
	maxChars := overlapTokens * 4
	if len(text) <= maxChars {
		return text
	}

	if sentenceSafe {
		if s := trailingSentences(text, maxChars); s != "" {
			return s
		}
		return trailingWords(text, maxChars)
	}

	start := len(text) - maxChars
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	return text[start:]
}

// trailingSentences returns as many complete trailing sentences as fit in
// maxChars, or "" when the last sentence alone is too long.
func trailingSentences(text string, maxChars int) string {
	sentences := splitSentences(text)
	total := 0
	first := len(sentences)
	for i := len(sentences) - 1; i >= 0; i-- {
		add := len(sentences[i])
		if total > 0 {
			add++ // joining space
		}
		if total+add > maxChars {
			break
		}
		total += add
		first = i
	}
	if first == len(sentences) {
		return ""
	}
	return strings.Join(sentences[first:], " ")
}

// trailingWords slices at a word boundary within the last maxChars.
func trailingWords(text string, maxChars int) string {
	start := len(text) - maxChars
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	suffix := text[start:]
	if idx := strings.IndexByte(suffix, ' '); idx >= 0 {
		return strings.TrimSpace(suffix[idx+1:])
	}
	return strings.TrimSpace(suffix)
}

// splitSentences does basic sentence splitting on terminal punctuation
// followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\n') {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
