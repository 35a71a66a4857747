// Package metadatatest provides a recording metadata.MetadataSink for tests.
package metadatatest

import (
	"sync"
	"time"

	"github.com/rohmanhakim/nl-locator/internal/metadata"
)

type FetchEvent struct {
	URL         string
	HTTPStatus  int
	Duration    time.Duration
	ContentType string
	RetryCount  int
}

type ErrorEvent struct {
	ObservedAt  time.Time
	PackageName string
	Action      string
	Cause       metadata.ErrorCause
	Details     string
	Attrs       []metadata.Attribute
}

type LocateEvent struct {
	Query           string
	TotalCandidates int
	BestScore       int
	HasBest         bool
	Duration        time.Duration
}

type ArtifactEvent struct {
	Kind  metadata.ArtifactKind
	Path  string
	Attrs []metadata.Attribute
}

// RecordingSink keeps every event in memory. Safe for concurrent use.
type RecordingSink struct {
	mu        sync.Mutex
	Fetches   []FetchEvent
	Errors    []ErrorEvent
	Locates   []LocateEvent
	Artifacts []ArtifactEvent
}

func (s *RecordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, ErrorEvent{
		ObservedAt:  observedAt,
		PackageName: packageName,
		Action:      action,
		Cause:       cause,
		Details:     details,
		Attrs:       attrs,
	})
}

func (s *RecordingSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fetches = append(s.Fetches, FetchEvent{
		URL:         fetchUrl,
		HTTPStatus:  httpStatus,
		Duration:    duration,
		ContentType: contentType,
		RetryCount:  retryCount,
	})
}

func (s *RecordingSink) RecordLocate(
	query string,
	totalCandidates int,
	bestScore int,
	hasBest bool,
	duration time.Duration,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Locates = append(s.Locates, LocateEvent{
		Query:           query,
		TotalCandidates: totalCandidates,
		BestScore:       bestScore,
		HasBest:         hasBest,
		Duration:        duration,
	})
}

func (s *RecordingSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Artifacts = append(s.Artifacts, ArtifactEvent{Kind: kind, Path: path, Attrs: attrs})
}

// ErrorCauses lists the recorded error causes in order.
func (s *RecordingSink) ErrorCauses() []metadata.ErrorCause {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]metadata.ErrorCause, 0, len(s.Errors))
	for _, e := range s.Errors {
		out = append(out, e.Cause)
	}
	return out
}
