package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseContentTypeInvalid    FetchErrorCause = "non-HTML content"
	ErrCauseRedirectLimitExceeded FetchErrorCause = "reached redirect limit"
	ErrCauseRequestPageForbidden  FetchErrorCause = "forbidden"
	ErrCauseRequestClientError    FetchErrorCause = "client error"
	ErrCauseRequestTooMany        FetchErrorCause = "too many requests"
	ErrCauseRequest5xx            FetchErrorCause = "5xx"
)

type FetchError struct {
	Message    string
	Retryable  bool
	Cause      FetchErrorCause
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout, ErrCauseNetworkFailure, ErrCauseRequest5xx, ErrCauseRedirectLimitExceeded:
		return metadata.CauseNetworkFailure
	case ErrCauseRequestTooMany, ErrCauseRequestPageForbidden, ErrCauseRequestClientError:
		return metadata.CausePolicyDisallow
	case ErrCauseContentTypeInvalid, ErrCauseReadResponseBodyError:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
