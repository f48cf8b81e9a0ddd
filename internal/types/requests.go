package types

import "github.com/go-playground/validator/v10"

// TranscribeRequest is the body for POST /transcribe.
type TranscribeRequest struct {
	VideoID string `json:"videoId" validate:"required"`
}

// SummarizeRequest is the body for POST /summarize.
type SummarizeRequest struct {
	VideoID    string `json:"videoId" validate:"required"`
	Transcript string `json:"transcript" validate:"required"`
}

// SubmitResponse acknowledges a submit call.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TranscriptResponse is the body for GET /transcribe/result/{videoId}.
type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

// SummaryResponse is the body for GET /summarize/result/{videoId}.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// Validate validates the TranscribeRequest using the validator.
func (r *TranscribeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SummarizeRequest using the validator.
func (r *SummarizeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
