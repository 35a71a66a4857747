package session

import (
	"fmt"

	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
)

type SessionErrorCause string

const (
	ErrCauseLaunchFailure   SessionErrorCause = "browser launch failed"
	ErrCauseNavigateFailure SessionErrorCause = "navigation failed"
	ErrCauseReadFailure     SessionErrorCause = "failed to read page"
	ErrCauseClosed          SessionErrorCause = "session closed"
)

type SessionError struct {
	Message   string
	Retryable bool
	Cause     SessionErrorCause
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session error: %s: %s", e.Cause, e.Message)
}

func (e *SessionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSessionErrorToMetadataCause maps session-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSessionErrorToMetadataCause(err *SessionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseLaunchFailure, ErrCauseNavigateFailure, ErrCauseReadFailure:
		return metadata.CauseBrowserFailure
	default:
		return metadata.CauseUnknown
	}
}
