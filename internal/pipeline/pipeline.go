// Package pipeline executes transcription and summarization jobs, recording
// progress milestones in the job store as the work advances.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/transcript-pipeline/internal/provider"
	"github.com/jonathan/transcript-pipeline/internal/store"
	"github.com/jonathan/transcript-pipeline/internal/summarize"
	"github.com/jonathan/transcript-pipeline/internal/textproc"
	"github.com/jonathan/transcript-pipeline/internal/types"
)

// Job status text, fixed strings the polling UI renders verbatim.
const (
	statusStartingTranscription = "Starting transcription..."
	statusProcessingTranscript  = "Processing transcript..."
	statusTranscriptionComplete = "Transcription complete"
	statusStartingSummarization = "Starting summarization..."
	statusSummarizationComplete = "Summarization complete"
)

// ProgressFunc receives every snapshot the pipeline writes for a job.
// Used by the SSE handlers; nil is fine.
type ProgressFunc func(snap types.JobSnapshot)

// Pipeline runs jobs against a store and a transcript provider.
type Pipeline struct {
	store    *store.Store
	provider provider.Provider
	verbose  bool
}

// New creates a pipeline. The store and provider are injected so tests can
// use a fresh store and a fake provider per case.
func New(st *store.Store, prov provider.Provider, verbose bool) *Pipeline {
	return &Pipeline{store: st, provider: prov, verbose: verbose}
}

// Transcribe fetches, joins and cleans the transcript for a video, storing
// the cleaned text as the job result. Progress milestones: 0 (starting),
// 50 (fetched, cleaning), 100 (complete). On failure the job is reset to
// progress 0 with an "Error: ..." status and the error is returned.
func (p *Pipeline) Transcribe(ctx context.Context, videoID string, onProgress ProgressFunc) error {
	p.set(types.KindTranscription, videoID, types.ProgressNone, statusStartingTranscription, onProgress)

	var (
		segments []types.Segment
		meta     *types.VideoMetadata
	)

	// Metadata is cosmetic, so its lookup never fails the job; the
	// transcript fetch does.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		segs, err := p.provider.Transcript(gctx, videoID)
		if err != nil {
			return err
		}
		segments = segs
		return nil
	})
	g.Go(func() error {
		if m, err := p.provider.Metadata(gctx, videoID); err == nil {
			meta = m
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		p.fail(types.KindTranscription, videoID, err, onProgress)
		return err
	}

	if p.verbose {
		if meta != nil {
			log.Printf("[PIPELINE] Received %d segments for %q by %s", len(segments), meta.Title, meta.Author)
		} else {
			log.Printf("[PIPELINE] Received %d segments for video %s", len(segments), videoID)
		}
	}

	p.set(types.KindTranscription, videoID, types.ProgressHalf, statusProcessingTranscript, onProgress)

	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	cleaned := textproc.Clean(textproc.JoinSegments(texts))

	p.store.SetResult(types.KindTranscription, videoID, cleaned)
	p.set(types.KindTranscription, videoID, types.ProgressDone, statusTranscriptionComplete, onProgress)

	if p.verbose {
		log.Printf("[PIPELINE] Transcription complete for %s (%d chars)", videoID, len(cleaned))
	}
	return nil
}

// Summarize derives the extractive summary for an already-cleaned
// transcript. The summarizer itself never fails, so the only milestones are
// 0 and 100.
func (p *Pipeline) Summarize(_ context.Context, videoID string, transcript string, onProgress ProgressFunc) error {
	p.set(types.KindSummarization, videoID, types.ProgressNone, statusStartingSummarization, onProgress)

	summary := summarize.Extract(transcript)

	p.store.SetResult(types.KindSummarization, videoID, summary)
	p.set(types.KindSummarization, videoID, types.ProgressDone, statusSummarizationComplete, onProgress)

	if p.verbose {
		log.Printf("[PIPELINE] Summarization complete for %s (%d chars)", videoID, len(summary))
	}
	return nil
}

// set records a snapshot and forwards it to the progress callback.
func (p *Pipeline) set(kind types.JobKind, videoID string, progress int, status string, onProgress ProgressFunc) {
	snap := types.JobSnapshot{Progress: progress, Status: status}
	p.store.SetJob(kind, videoID, snap)
	if onProgress != nil {
		onProgress(snap)
	}
}

// fail resets a job to progress 0 with an error status.
func (p *Pipeline) fail(kind types.JobKind, videoID string, err error, onProgress ProgressFunc) {
	p.set(kind, videoID, types.ProgressNone, fmt.Sprintf("Error: %s", err.Error()), onProgress)
}
