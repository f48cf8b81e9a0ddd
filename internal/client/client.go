// Package client drives the submit-then-poll protocol against a pipeline
// server and reports terminal state to its caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

// State is the client-side phase of a job.
type State int

const (
	StateIdle State = iota
	StateSubmitted
	StatePolling
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitted:
		return "submitted"
	case StatePolling:
		return "polling"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Defaults for the polling loop. The interval is a politeness backoff, not
// a correctness requirement; the timeout bounds jobs that never reach a
// terminal snapshot.
const (
	DefaultPollInterval = 1 * time.Second
	DefaultPollTimeout  = 2 * time.Minute
)

// TimeoutError indicates a job did not reach a terminal state in time.
type TimeoutError struct {
	VideoID string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job for video %s did not finish within %s", e.VideoID, e.Elapsed)
}

// JobFailedError indicates the server recorded a failed job snapshot.
type JobFailedError struct {
	VideoID string
	Status  string
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("job for video %s failed: %s", e.VideoID, e.Status)
}

// ProgressFunc receives every polled snapshot.
type ProgressFunc func(snap types.JobSnapshot)

// Client drives transcription and summarization jobs against a server.
// It holds no authoritative state, only the phase of the job in flight;
// it is not safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
	state        State
}

// Option configures a Client.
type Option func(*Client)

// WithPollInterval overrides the delay between progress polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// WithPollTimeout overrides the wall-clock bound on the polling loop.
func WithPollTimeout(d time.Duration) Option {
	return func(c *Client) { c.pollTimeout = d }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
		state:        StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the phase of the most recent job.
func (c *Client) State() State {
	return c.state
}

// Health checks the server liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	return c.getJSON(ctx, "/test", &resp)
}

// Metadata looks up title/author/thumbnail for a video.
func (c *Client) Metadata(ctx context.Context, videoID string) (*types.VideoMetadata, error) {
	var meta types.VideoMetadata
	if err := c.getJSON(ctx, "/video/"+videoID, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Transcribe submits a transcription job, polls it to a terminal state and
// returns the cleaned transcript.
func (c *Client) Transcribe(ctx context.Context, videoID string, onProgress ProgressFunc) (string, error) {
	if err := c.submit(ctx, "/transcribe", types.TranscribeRequest{VideoID: videoID}); err != nil {
		return "", err
	}

	if err := c.pollUntilDone(ctx, "/transcribe/progress/"+videoID, videoID, onProgress); err != nil {
		return "", err
	}

	var result types.TranscriptResponse
	if err := c.getJSON(ctx, "/transcribe/result/"+videoID, &result); err != nil {
		c.state = StateFailed
		return "", err
	}
	c.state = StateComplete
	return result.Transcript, nil
}

// Summarize submits a summarization job for a transcript the caller holds,
// polls it to a terminal state and returns the summary.
func (c *Client) Summarize(ctx context.Context, videoID, transcript string, onProgress ProgressFunc) (string, error) {
	req := types.SummarizeRequest{VideoID: videoID, Transcript: transcript}
	if err := c.submit(ctx, "/summarize", req); err != nil {
		return "", err
	}

	if err := c.pollUntilDone(ctx, "/summarize/progress/"+videoID, videoID, onProgress); err != nil {
		return "", err
	}

	var result types.SummaryResponse
	if err := c.getJSON(ctx, "/summarize/result/"+videoID, &result); err != nil {
		c.state = StateFailed
		return "", err
	}
	c.state = StateComplete
	return result.Summary, nil
}

// submit POSTs the job request. Any non-success outcome moves the client
// straight to Failed.
func (c *Client) submit(ctx context.Context, path string, body any) error {
	c.state = StateSubmitted

	payload, err := json.Marshal(body)
	if err != nil {
		c.state = StateFailed
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.state = StateFailed
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.state = StateFailed
		return fmt.Errorf("submit failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		c.state = StateFailed
		return fmt.Errorf("submit failed: %s", readError(resp))
	}
	return nil
}

// pollUntilDone polls the progress endpoint at the configured interval
// until the job completes, fails, or the timeout elapses.
func (c *Client) pollUntilDone(ctx context.Context, path, videoID string, onProgress ProgressFunc) error {
	c.state = StatePolling
	start := time.Now()

	for {
		var snap types.JobSnapshot
		if err := c.getJSON(ctx, path, &snap); err != nil {
			c.state = StateFailed
			return fmt.Errorf("poll failed: %w", err)
		}

		if onProgress != nil {
			onProgress(snap)
		}

		if snap.Terminal() {
			return nil
		}
		if snap.Failed() {
			c.state = StateFailed
			return &JobFailedError{VideoID: videoID, Status: snap.Status}
		}

		elapsed := time.Since(start)
		if elapsed+c.pollInterval > c.pollTimeout {
			c.state = StateFailed
			return &TimeoutError{VideoID: videoID, Elapsed: elapsed}
		}

		select {
		case <-ctx.Done():
			c.state = StateFailed
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// getJSON GETs a path and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", path, readError(resp))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// readError extracts the {"error": ...} message from a failed response,
// falling back to the HTTP status.
func readError(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return payload.Error
		}
	}
	return resp.Status
}
