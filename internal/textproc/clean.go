// Package textproc provides transcript text normalization.
//
// The exported contract is deliberately fail-soft: Clean never returns an
// error and never panics. The popup UI that consumes cleaned transcripts has
// no error path for this step, so a failed normalization degrades to the
// original input instead of propagating.
package textproc

import (
	"html"
	"regexp"
	"strings"
)

var (
	// [mm:ss] style inline timestamps.
	timestampRe = regexp.MustCompile(`\[\d+:\d+\]`)
	// Parenthetical notes, bracketed annotations and markup tags.
	annotationRe = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|<[^>]*>`)
	// Musical note glyphs that caption tracks sprinkle around lyrics.
	noteRe = regexp.MustCompile(`[♪♫🎵🎶]`)
	// Spoken filler, whole words only.
	fillerRe = regexp.MustCompile(`(?i)\b(um|uh|ah|er|like|you know|i mean)\b`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Clean normalizes a raw transcript: decodes HTML entities, strips
// timestamps, annotations, markup, note glyphs and filler words, and
// collapses runs of whitespace. If anything goes wrong the original input is
// returned unchanged.
func Clean(text string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			cleaned = text
		}
	}()

	// Decode entities first so encoded markup is stripped like plain markup.
	cleaned = html.UnescapeString(text)

	cleaned = timestampRe.ReplaceAllString(cleaned, "")
	cleaned = annotationRe.ReplaceAllString(cleaned, "")
	cleaned = noteRe.ReplaceAllString(cleaned, "")
	cleaned = fillerRe.ReplaceAllString(cleaned, "")
	cleaned = spaceRe.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}

// JoinSegments flattens ordered caption texts into the single raw string the
// cleaner operates on.
func JoinSegments(texts []string) string {
	return strings.Join(texts, " ")
}
