package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

func TestPrintVideoMetadata(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVideoMetadata("abc123", &types.VideoMetadata{Title: "A Video", Author: "An Author"})

	out := buf.String()
	assert.Contains(t, out, "VIDEO DETAILS")
	assert.Contains(t, out, "A Video")
	assert.Contains(t, out, "An Author")
}

func TestPrintVideoMetadataNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVideoMetadata("abc123", nil)
	assert.Empty(t, buf.String())
}

func TestPrintTranscriptTruncatesPreview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	long := strings.Repeat("word ", 200)
	p.PrintTranscript(long)

	out := buf.String()
	assert.Contains(t, out, "CLEANED TRANSCRIPT")
	assert.Contains(t, out, "1000 characters")
	assert.Contains(t, out, "...")
}

func TestProgressLine(t *testing.T) {
	line := ProgressLine(types.JobSnapshot{Progress: 50, Status: "Processing transcript..."})
	assert.Contains(t, line, "50%")
	assert.Contains(t, line, "Processing transcript...")
	assert.Contains(t, line, "█")
	assert.Contains(t, line, "░")

	full := ProgressLine(types.JobSnapshot{Progress: 100, Status: "Transcription complete"})
	assert.NotContains(t, full, "░")
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five six seven", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}
}
