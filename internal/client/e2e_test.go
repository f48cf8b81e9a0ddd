package client

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/transcript-pipeline/internal/server"
	"github.com/jonathan/transcript-pipeline/internal/types"
)

// cannedProvider feeds a fixed transcript through the real server stack.
type cannedProvider struct {
	segments []types.Segment
}

func (p *cannedProvider) Transcript(_ context.Context, _ string) ([]types.Segment, error) {
	return p.segments, nil
}

func (p *cannedProvider) Metadata(_ context.Context, _ string) (*types.VideoMetadata, error) {
	return &types.VideoMetadata{Title: "A Video", Author: "An Author"}, nil
}

// fiveHundredWords builds a transcript of five hundred words split over
// caption segments, with typical caption noise mixed in.
func fiveHundredWords() []types.Segment {
	var segments []types.Segment
	for i := 0; i < 100; i++ {
		segments = append(segments, types.Segment{
			Text:     fmt.Sprintf("um segment %d carries some spoken words here.", i),
			Start:    float64(i) * 3,
			Duration: 3,
		})
	}
	return segments
}

func newE2EStack(t *testing.T) *Client {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	s := server.New(server.Config{Provider: &cannedProvider{segments: fiveHundredWords()}})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return New(srv.URL,
		WithPollInterval(5*time.Millisecond),
		WithPollTimeout(5*time.Second))
}

func TestEndToEndTranscription(t *testing.T) {
	c := newE2EStack(t)

	var last types.JobSnapshot
	transcript, err := c.Transcribe(context.Background(), "dQw4w9WgXcQ", func(snap types.JobSnapshot) {
		// Progress never decreases while the job is healthy.
		assert.GreaterOrEqual(t, snap.Progress, last.Progress)
		last = snap
	})
	require.NoError(t, err)

	assert.Equal(t, 100, last.Progress)
	assert.NotEmpty(t, transcript)
	assert.NotContains(t, transcript, "um ", "filler words are cleaned")
	assert.Equal(t, StateComplete, c.State())
}

func TestEndToEndSummarization(t *testing.T) {
	c := newE2EStack(t)

	transcript := "Sentence one is long enough to count. " +
		"Sentence two is also long enough. " +
		"Sentence three is here and long enough. " +
		"Sentence four is here and long enough. " +
		"Sentence five is here and long enough."

	summary, err := c.Summarize(context.Background(), "dQw4w9WgXcQ", transcript, nil)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(summary, "Summary:\n\n"), "got %q", summary)
	bullets := 0
	for _, line := range strings.Split(summary, "\n") {
		if strings.HasPrefix(line, "• ") {
			bullets++
		}
	}
	assert.GreaterOrEqual(t, bullets, 3)
	assert.LessOrEqual(t, bullets, 5)
	assert.Equal(t, StateComplete, c.State())
}

func TestEndToEndTranscribeThenSummarize(t *testing.T) {
	c := newE2EStack(t)

	transcript, err := c.Transcribe(context.Background(), "dQw4w9WgXcQ", nil)
	require.NoError(t, err)

	summary, err := c.Summarize(context.Background(), "dQw4w9WgXcQ", transcript, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary, "Summary:"))
}
