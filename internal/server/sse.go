package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

// SSEWriter helps write Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event.
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends a completion event.
func (s *SSEWriter) WriteComplete(videoID, status string) {
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"videoId": videoID,
		"status":  status,
	})
}

// handleTranscribeStream runs a transcription job and streams its progress
// snapshots as SSE instead of requiring the caller to poll.
func (s *Server) handleTranscribeStream(w http.ResponseWriter, r *http.Request) {
	var req types.TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgVideoIDRequired)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming transcription for video: %s", req.VideoID)

	err = s.pipeline.Transcribe(r.Context(), req.VideoID, func(snap types.JobSnapshot) {
		if werr := sse.WriteEvent("progress", snap); werr != nil {
			log.Printf("Error writing SSE event: %v", werr)
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(req.VideoID, "completed")
}

// handleSummarizeStream mirrors handleTranscribeStream for summaries.
func (s *Server) handleSummarizeStream(w http.ResponseWriter, r *http.Request) {
	var req types.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgTranscriptRequired)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming summarization for video: %s", req.VideoID)

	err = s.pipeline.Summarize(r.Context(), req.VideoID, req.Transcript, func(snap types.JobSnapshot) {
		if werr := sse.WriteEvent("progress", snap); werr != nil {
			log.Printf("Error writing SSE event: %v", werr)
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(req.VideoID, "completed")
}
