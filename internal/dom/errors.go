package dom

import (
	"fmt"

	"github.com/rohmanhakim/nl-locator/pkg/failure"
)

type ParseErrorCause string

const (
	ErrCauseReadFailure ParseErrorCause = "failed to read document"
)

// ParseError is only raised when the underlying reader fails. Malformed
// markup never produces a ParseError: the HTML5 parser repairs it.
type ParseError struct {
	Message   string
	Retryable bool
	Cause     ParseErrorCause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dom error: %s", e.Cause)
}

func (e *ParseError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
