package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

func TestTranscribeStreamEmitsProgressEvents(t *testing.T) {
	s := newTestServer(t, &fakeProvider{segments: transcriptSegments()}, false)

	w := doJSON(t, s, http.MethodPost, "/transcribe/stream", types.TranscribeRequest{VideoID: "abc123"})

	body := w.Body.String()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: progress")
	assert.Contains(t, body, `"status":"Starting transcription..."`)
	assert.Contains(t, body, `"progress":100`)
	assert.Contains(t, body, "event: complete")
}

func TestTranscribeStreamEmitsErrorEvent(t *testing.T) {
	prov := &fakeProvider{err: &testError{"Transcript is disabled on this video (abc123)"}}
	s := newTestServer(t, prov, false)

	w := doJSON(t, s, http.MethodPost, "/transcribe/stream", types.TranscribeRequest{VideoID: "abc123"})

	body := w.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "disabled")
	assert.NotContains(t, body, "event: complete")
}

func TestSummarizeStreamValidation(t *testing.T) {
	s := newTestServer(t, &fakeProvider{}, false)

	w := doJSON(t, s, http.MethodPost, "/summarize/stream", map[string]string{"videoId": "abc123"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Video ID and transcript are required", decodeMap(t, w)["error"])
}

func TestSummarizeStreamCompletes(t *testing.T) {
	s := newTestServer(t, &fakeProvider{}, false)

	w := doJSON(t, s, http.MethodPost, "/summarize/stream", types.SummarizeRequest{
		VideoID:    "abc123",
		Transcript: "Sentence one is long enough to count. Sentence two is also long enough here.",
	})

	body := w.Body.String()
	assert.Contains(t, body, `"status":"Summarization complete"`)
	assert.Contains(t, body, "event: complete")
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
