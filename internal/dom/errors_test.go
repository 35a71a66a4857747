package dom_test

import (
	"testing"

	"github.com/rohmanhakim/nl-locator/internal/dom"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	err := &dom.ParseError{
		Message: "boom",
		Cause:   dom.ErrCauseReadFailure,
	}

	assert.IsType(t, dom.ParseErrorCause(""), dom.ErrCauseReadFailure)
	assert.Equal(t, "dom error: failed to read document", err.Error())
	assert.Equal(t, failure.SeverityFatal, err.Severity())

	err.Retryable = true
	assert.Equal(t, failure.SeverityRecoverable, err.Severity())

	var _ failure.ClassifiedError = err
}
