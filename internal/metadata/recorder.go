package metadata

import (
	"time"

	"github.com/rs/zerolog"
)

/*
Metadata Collected
- Fetch timestamps, status codes and retry counts
- Ranking summaries (candidate count, best score, duration)
- Written artifacts

Logging Goals
- Debuggable locate behavior
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Status codes
- Durations
- Queries

Metadata is write-only.
No component may read metadata to influence ranking decisions.
*/

/*
Recorder captures structured locate events and writes them to a zerolog
logger.
It must not:
- perform I/O decisions
- affect control flow
Ordering guarantees:
- Events are recorded synchronously in the order they are received.
- No global ordering across concurrent requests is guaranteed.
*/
type Recorder struct {
	workerId string
	logger   zerolog.Logger
}

func NewRecorder(workerId string, logger zerolog.Logger) Recorder {
	return Recorder{
		workerId: workerId,
		logger:   logger.With().Str("worker", workerId).Logger(),
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	record := ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  observedAt,
		attrs:       attrs,
	}
	r.appendError(record)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
	r.appendFetch(FetchEvent{
		fetchUrl:    fetchUrl,
		httpStatus:  httpStatus,
		duration:    duration,
		contentType: contentType,
		retryCount:  retryCount,
	})
}

func (r *Recorder) RecordLocate(
	query string,
	totalCandidates int,
	bestScore int,
	hasBest bool,
	duration time.Duration,
) {
	r.appendLocate(LocateEvent{
		query:           query,
		totalCandidates: totalCandidates,
		bestScore:       bestScore,
		hasBest:         hasBest,
		duration:        duration,
	})
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	event := r.logger.Info().
		Str("event", "artifact").
		Str("kind", string(kind)).
		Str("path", path)
	withAttrs(event, attrs).Send()
}

func (r *Recorder) appendError(rec ErrorRecord) {
	event := r.logger.Error().
		Time("observed_at", rec.observedAt).
		Str("package", rec.packageName).
		Str("action", rec.action).
		Stringer("cause", rec.cause).
		Str("error", rec.errorString)
	withAttrs(event, rec.attrs).Send()
}

func (r *Recorder) appendFetch(ev FetchEvent) {
	r.logger.Info().
		Str("event", "fetch").
		Str("url", ev.fetchUrl).
		Int("status", ev.httpStatus).
		Dur("duration", ev.duration).
		Str("content_type", ev.contentType).
		Int("retries", ev.retryCount).
		Send()
}

func (r *Recorder) appendLocate(ev LocateEvent) {
	event := r.logger.Info().
		Str("event", "locate").
		Str("query", ev.query).
		Int("candidates", ev.totalCandidates).
		Dur("duration", ev.duration)
	if ev.hasBest {
		event = event.Int("best_score", ev.bestScore)
	}
	event.Send()
}

func withAttrs(event *zerolog.Event, attrs []Attribute) *zerolog.Event {
	for _, attr := range attrs {
		event = event.Str(string(attr.Key), attr.Value)
	}
	return event
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		retryCount int,
	)
	RecordLocate(
		query string,
		totalCandidates int,
		bestScore int,
		hasBest bool,
		duration time.Duration,
	)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

// NoopSink, struct that implements metadata.Sink but does nothing
// Callers (or tests) can decide whether to inject Recorder or NoopSink
// Purpose is to make metadata orthogonal

type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {

}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
}

func (n *NoopSink) RecordLocate(
	query string,
	totalCandidates int,
	bestScore int,
	hasBest bool,
	duration time.Duration,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
