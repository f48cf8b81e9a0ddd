// Package types provides type definitions for structured data shared across the transcript pipeline.
package types

import "fmt"

// JobKind identifies which stage of the pipeline a job belongs to.
type JobKind string

const (
	// KindTranscription is the fetch-and-clean stage.
	KindTranscription JobKind = "transcription"
	// KindSummarization is the extractive-summary stage.
	KindSummarization JobKind = "summarization"
)

// resultPrefix maps a job kind to the prefix used in result keys.
func (k JobKind) resultPrefix() string {
	if k == KindSummarization {
		return "summary"
	}
	return "transcript"
}

// Key returns the store key for a job of this kind, e.g. "transcript-dQw4w9WgXcQ".
func (k JobKind) Key(videoID string) string {
	return fmt.Sprintf("%s-%s", k.resultPrefix(), videoID)
}

// Progress bounds. A job starts at ProgressNone and is terminal at ProgressDone.
const (
	ProgressNone = 0
	ProgressHalf = 50
	ProgressDone = 100
)

// StatusNotStarted is the snapshot status for keys that were never submitted.
const StatusNotStarted = "Not started"

// JobSnapshot is the client-visible state of a job at one poll.
type JobSnapshot struct {
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

// Terminal reports whether the job reached its success state.
func (s JobSnapshot) Terminal() bool {
	return s.Progress >= ProgressDone
}

// Failed reports whether the snapshot records a terminal failure.
// An error status resets progress to zero, so both conditions are checked.
func (s JobSnapshot) Failed() bool {
	return s.Progress == ProgressNone && len(s.Status) >= 6 && s.Status[:6] == "Error:"
}

// Segment is one timed caption entry from the transcript provider.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// VideoMetadata holds the oEmbed lookup result for a video.
type VideoMetadata struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Thumbnail string `json:"thumbnail"`
}
