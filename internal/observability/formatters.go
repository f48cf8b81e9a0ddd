// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// progressBarWidth is the width of the rendered progress bar
	progressBarWidth = 30
	// transcriptPreviewLen bounds how much transcript text is boxed
	transcriptPreviewLen = 400
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintVideoMetadata outputs the oEmbed lookup result for a video.
func (p *Printer) PrintVideoMetadata(videoID string, meta *types.VideoMetadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Video:   %s\n", videoID))
	sb.WriteString(fmt.Sprintf("Title:   %s\n", meta.Title))
	sb.WriteString(fmt.Sprintf("Author:  %s", meta.Author))

	p.printBox("VIDEO DETAILS", sb.String())
}

// PrintTranscript outputs a preview of the cleaned transcript.
func (p *Printer) PrintTranscript(transcript string) {
	preview := transcript
	if len(preview) > transcriptPreviewLen {
		preview = preview[:transcriptPreviewLen] + "..."
	}

	content := fmt.Sprintf("%d characters\n\n%s", len(transcript), wrapText(preview, boxWidth-4))
	p.printBox("CLEANED TRANSCRIPT", content)
}

// PrintSummary outputs the generated summary.
func (p *Printer) PrintSummary(summary string) {
	p.printBox("SUMMARY", summary)
}

// ProgressLine renders a single-line progress bar for a job snapshot,
// suitable for carriage-return updates during polling.
func ProgressLine(snap types.JobSnapshot) string {
	filled := snap.Progress * progressBarWidth / 100
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return fmt.Sprintf("[%s] %3d%% %s", bar, snap.Progress, snap.Status)
}

// wrapText folds text at width characters, breaking on spaces.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen+len(word)+1 > width && lineLen > 0 {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
