package locate

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
)

type LocateErrorCause string

const (
	ErrCauseMissingQuery       LocateErrorCause = "query is required"
	ErrCauseMissingDocument    LocateErrorCause = "Provide either url or html (or reuse Chrome page)."
	ErrCauseInvalidURL         LocateErrorCause = "url must be an absolute http(s) URL"
	ErrCauseInvalidRender      LocateErrorCause = "render must be \"requests\" or \"chrome\""
	ErrCauseBrowserUnavailable LocateErrorCause = "chrome rendering is not enabled"
)

// LocateError reports an unusable request. It is surfaced to the caller
// as is and never retried.
type LocateError struct {
	Message   string
	Retryable bool
	Cause     LocateErrorCause
}

func (e *LocateError) Error() string {
	if e.Message == "" {
		return string(e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Cause, e.Message)
}

func (e *LocateError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsInputError reports whether err was caused by the request itself.
func IsInputError(err error) bool {
	var locateErr *LocateError
	return errors.As(err, &locateErr)
}

func inputError(cause LocateErrorCause, message string) *LocateError {
	return &LocateError{
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// mapLocateErrorToMetadataCause maps locate-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapLocateErrorToMetadataCause(err *LocateError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseMissingQuery, ErrCauseMissingDocument, ErrCauseInvalidURL, ErrCauseInvalidRender:
		return metadata.CauseInputInvalid
	case ErrCauseBrowserUnavailable:
		return metadata.CauseBrowserFailure
	default:
		return metadata.CauseUnknown
	}
}
