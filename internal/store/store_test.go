package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

func TestJobRoundTrip(t *testing.T) {
	s := New()

	snap := types.JobSnapshot{Progress: 50, Status: "Processing transcript..."}
	s.SetJob(types.KindTranscription, "abc123", snap)

	assert.Equal(t, snap, s.Job(types.KindTranscription, "abc123"))
}

func TestJobDefaultSnapshot(t *testing.T) {
	s := New()

	snap := s.Job(types.KindTranscription, "never-submitted")

	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, "Not started", snap.Status)
}

func TestJobKindsAreIndependent(t *testing.T) {
	s := New()

	s.SetJob(types.KindTranscription, "abc123", types.JobSnapshot{Progress: 100, Status: "Transcription complete"})

	assert.Equal(t, 100, s.Job(types.KindTranscription, "abc123").Progress)
	assert.Equal(t, 0, s.Job(types.KindSummarization, "abc123").Progress)
}

func TestResultRoundTrip(t *testing.T) {
	s := New()

	_, ok := s.Result(types.KindTranscription, "abc123")
	require.False(t, ok)

	s.SetResult(types.KindTranscription, "abc123", "cleaned transcript text")

	text, ok := s.Result(types.KindTranscription, "abc123")
	require.True(t, ok)
	assert.Equal(t, "cleaned transcript text", text)

	// Same video ID under the other kind stays empty.
	_, ok = s.Result(types.KindSummarization, "abc123")
	assert.False(t, ok)
}

func TestResultOverwrite(t *testing.T) {
	s := New()

	s.SetResult(types.KindSummarization, "abc123", "first summary")
	s.SetResult(types.KindSummarization, "abc123", "second summary")

	text, ok := s.Result(types.KindSummarization, "abc123")
	require.True(t, ok)
	assert.Equal(t, "second summary", text)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("video-%d", n)
			s.SetJob(types.KindTranscription, id, types.JobSnapshot{Progress: 100, Status: "Transcription complete"})
			s.SetResult(types.KindTranscription, id, "text")
			_ = s.Job(types.KindTranscription, id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("video-%d", i)
		assert.Equal(t, 100, s.Job(types.KindTranscription, id).Progress)
	}
}
