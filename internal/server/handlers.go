package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

// Fixed validation messages, matched by the extension popup.
const (
	msgVideoIDRequired    = "Video ID is required"
	msgTranscriptRequired = "Video ID and transcript are required"
)

// handleTranscribe accepts a transcription job. In sync mode the fetch and
// clean run inside this call and the response reports the terminal outcome;
// in async mode the response acknowledges the submission and progress is
// observed via polling.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req types.TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Message: msgVideoIDRequired}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	log.Printf("Starting transcription for video: %s", req.VideoID)

	if s.async {
		go func() {
			if err := s.pipeline.Transcribe(context.Background(), req.VideoID, nil); err != nil {
				log.Printf("Transcription error: %v", err)
			}
		}()
		s.jsonResponse(w, http.StatusAccepted, types.SubmitResponse{
			Success: true,
			Message: "Transcription started",
		})
		return
	}

	if err := s.pipeline.Transcribe(r.Context(), req.VideoID, nil); err != nil {
		log.Printf("Transcription error: %v", err)
		uerr := &ErrUpstream{Err: err}
		s.errorResponse(w, HTTPStatus(uerr), uerr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SubmitResponse{
		Success: true,
		Message: "Transcription completed successfully",
	})
}

// handleSummarize accepts a summarization job for a transcript the caller
// already holds.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req types.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Message: msgTranscriptRequired}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	log.Printf("Starting summarization for video: %s", req.VideoID)

	if s.async {
		go func() {
			if err := s.pipeline.Summarize(context.Background(), req.VideoID, req.Transcript, nil); err != nil {
				log.Printf("Summarization error: %v", err)
			}
		}()
		s.jsonResponse(w, http.StatusAccepted, types.SubmitResponse{
			Success: true,
			Message: "Summarization started",
		})
		return
	}

	if err := s.pipeline.Summarize(r.Context(), req.VideoID, req.Transcript, nil); err != nil {
		log.Printf("Summarization error: %v", err)
		uerr := &ErrUpstream{Err: err}
		s.errorResponse(w, HTTPStatus(uerr), uerr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SubmitResponse{
		Success: true,
		Message: "Summarization completed successfully",
	})
}

// handleTranscribeProgress returns the current job snapshot, defaulting to
// progress 0 / "Not started" for unknown keys.
func (s *Server) handleTranscribeProgress(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	s.jsonResponse(w, http.StatusOK, s.store.Job(types.KindTranscription, videoID))
}

// handleSummarizeProgress mirrors handleTranscribeProgress for summaries.
func (s *Server) handleSummarizeProgress(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	s.jsonResponse(w, http.StatusOK, s.store.Job(types.KindSummarization, videoID))
}

// handleTranscribeResult returns the stored cleaned transcript.
func (s *Server) handleTranscribeResult(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	transcript, ok := s.store.Result(types.KindTranscription, videoID)
	if !ok {
		nerr := &ErrNotFound{What: "Transcript"}
		s.errorResponse(w, HTTPStatus(nerr), nerr.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, types.TranscriptResponse{Transcript: transcript})
}

// handleSummarizeResult returns the stored summary.
func (s *Server) handleSummarizeResult(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	summary, ok := s.store.Result(types.KindSummarization, videoID)
	if !ok {
		nerr := &ErrNotFound{What: "Summary"}
		s.errorResponse(w, HTTPStatus(nerr), nerr.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SummaryResponse{Summary: summary})
}

// handleVideoMetadata proxies the oEmbed title/author/thumbnail lookup so
// the popup does not have to call the platform directly.
func (s *Server) handleVideoMetadata(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")

	meta, err := s.provider.Metadata(r.Context(), videoID)
	if err != nil {
		log.Printf("Metadata lookup error for %s: %v", videoID, err)
		s.errorResponse(w, http.StatusBadGateway, "Failed to fetch video details")
		return
	}
	s.jsonResponse(w, http.StatusOK, meta)
}
