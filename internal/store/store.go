// Package store holds the in-memory job and result state for the pipeline server.
//
// The store is process-lifetime only: nothing is evicted or persisted. It is
// constructed at server start and injected into every component that needs it,
// so tests get isolation by creating a fresh instance.
package store

import (
	"sync"

	"github.com/jonathan/transcript-pipeline/internal/types"
)

type jobKey struct {
	kind    types.JobKind
	videoID string
}

// Store tracks job snapshots and completed results keyed by (kind, videoID).
// All methods are safe for concurrent use; writes to the same key are
// serialized so progress stays monotonic while a job is healthy.
type Store struct {
	mu      sync.RWMutex
	jobs    map[jobKey]types.JobSnapshot
	results map[string]string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		jobs:    make(map[jobKey]types.JobSnapshot),
		results: make(map[string]string),
	}
}

// SetJob records the current snapshot for a job, replacing any previous one.
func (s *Store) SetJob(kind types.JobKind, videoID string, snap types.JobSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[jobKey{kind, videoID}] = snap
}

// Job returns the snapshot for a job, or the "Not started" default if the key
// was never submitted.
func (s *Store) Job(kind types.JobKind, videoID string) types.JobSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if snap, ok := s.jobs[jobKey{kind, videoID}]; ok {
		return snap
	}
	return types.JobSnapshot{Progress: types.ProgressNone, Status: types.StatusNotStarted}
}

// SetResult stores the final artifact for a completed job. Resubmitting the
// same key overwrites the previous result wholesale.
func (s *Store) SetResult(kind types.JobKind, videoID string, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[kind.Key(videoID)] = text
}

// Result returns the stored artifact for a key and whether one exists.
func (s *Store) Result(kind types.JobKind, videoID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.results[kind.Key(videoID)]
	return text, ok
}
