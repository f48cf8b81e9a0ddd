// Package summarize derives short extractive summaries from cleaned transcripts.
//
// This is a deterministic sampling heuristic, not NLP: it keeps sentences
// sampled at an even stride through the text. The thresholds
// (20-char sentence filter, 3-5 bullets, 20% ratio) are part of the output
// contract and must not drift.
package summarize

import (
	"math"
	"strings"
)

// TooShortMessage is returned when no sentence survives the length filter.
const TooShortMessage = "Unable to generate summary: text too short or invalid."

// errorMessage is the fail-soft fallback; callers have no error path.
const errorMessage = "Error generating summary"

// minSentenceLen is the trim-then-filter cutoff for candidate sentences.
const minSentenceLen = 20

// Extract produces the bulleted summary for a transcript. It never panics:
// any internal failure yields a fixed error string instead.
func Extract(text string) (summary string) {
	defer func() {
		if r := recover(); r != nil {
			summary = errorMessage
		}
	}()

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return TooShortMessage
	}

	// 20% of sentences, clamped to [3, 5].
	n := int(math.Ceil(float64(len(sentences)) * 0.2))
	if n < 3 {
		n = 3
	}
	if n > 5 {
		n = 5
	}

	// Evenly spaced sampling. The stride is floored, so small inputs can
	// select the same sentence more than once; duplicates are allowed.
	step := len(sentences) / n

	var sb strings.Builder
	sb.WriteString("Summary:\n\n")
	for i := 0; i < n; i++ {
		idx := i * step
		if idx > len(sentences)-1 {
			idx = len(sentences) - 1
		}
		sb.WriteString("• ")
		sb.WriteString(sentences[idx])
		sb.WriteString(".\n")
	}

	return sb.String()
}

// splitSentences breaks text on terminal punctuation and keeps only
// sentences longer than minSentenceLen after trimming.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minSentenceLen {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
