package ingest

import (
	"strings"
	"unicode"
)

// Chunking bounds, in words. Report extracts are dense prose; ~300 words
// keeps a chunk within a comfortable share of the embedding context while
// staying specific enough to retrieve on.
const (
	maxChunkWords     = 300
	overlapChunkWords = 40
)

// splitChunks splits text into overlapping chunks along sentence
// boundaries. A sentence is never cut in half; consecutive chunks share a
// tail of roughly overlapChunkWords words so context survives the split.
func splitChunks(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	var currentWords int

	for _, sentence := range sentences {
		words := len(strings.Fields(sentence))

		if currentWords+words > maxChunkWords && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = overlapTail(current, overlapChunkWords)
			currentWords = 0
			for _, s := range current {
				currentWords += len(strings.Fields(s))
			}
		}

		current = append(current, sentence)
		currentWords += words
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// splitSentences splits on ./!/? followed by whitespace or end of text.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				if sentence := strings.TrimSpace(current.String()); sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}
	return sentences
}

// overlapTail returns the smallest suffix of sentences holding at least
// budget words, or all of them when the text is short.
func overlapTail(sentences []string, budget int) []string {
	total := 0
	start := len(sentences)

	for i := len(sentences) - 1; i >= 0; i-- {
		words := len(strings.Fields(sentences[i]))
		if total+words > budget && start != len(sentences) {
			break
		}
		total += words
		start = i
	}
	return append([]string(nil), sentences[start:]...)
}
