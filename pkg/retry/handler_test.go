package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"github.com/rohmanhakim/nl-locator/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockError is a mock implementation of failure.ClassifiedError for testing
type mockError struct {
	msg       string
	retryable bool
}

func (m *mockError) Error() string {
	return m.msg
}

func (m *mockError) Severity() failure.Severity {
	if m.retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// severityOnly has no IsRetryable method.
type severityOnly struct {
	severity failure.Severity
}

func (s *severityOnly) Error() string              { return "severity only" }
func (s *severityOnly) Severity() failure.Severity { return s.severity }

func fastParam(attempts int) retry.RetryParam {
	return retry.NewRetryParam(attempts, time.Millisecond, 2.0, 5*time.Millisecond, 0)
}

func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	result, err := retry.Retry(context.Background(), fastParam(3), func(ctx context.Context) (string, failure.ClassifiedError) {
		calls++
		return "ok", nil
	})

	require.Nil(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestRetry_SucceedsAfterRetryableFailures(t *testing.T) {
	calls := 0
	result, err := retry.Retry(context.Background(), fastParam(3), func(ctx context.Context) (int, failure.ClassifiedError) {
		calls++
		if calls < 3 {
			return 0, &mockError{msg: "flaky", retryable: true}
		}
		return 7, nil
	})

	require.Nil(t, err)
	assert.Equal(t, 7, result)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := retry.Retry(context.Background(), fastParam(5), func(ctx context.Context) (int, failure.ClassifiedError) {
		calls++
		return 0, &mockError{msg: "fatal", retryable: false}
	})

	require.NotNil(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fatal", err.Error())
}

func TestRetry_SeverityFallback(t *testing.T) {
	calls := 0
	_, err := retry.Retry(context.Background(), fastParam(2), func(ctx context.Context) (int, failure.ClassifiedError) {
		calls++
		return 0, &severityOnly{severity: failure.SeverityRecoverable}
	})

	require.NotNil(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_Exhausted(t *testing.T) {
	last := &mockError{msg: "still down", retryable: true}
	_, err := retry.Retry(context.Background(), fastParam(3), func(ctx context.Context) (int, failure.ClassifiedError) {
		return 0, last
	})

	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrExhaustedAttempts, retryErr.Cause)
	assert.Contains(t, retryErr.Error(), "exhausted 3 attempts")
	assert.True(t, errors.Is(err, last))
	assert.Equal(t, failure.SeverityRecoverable, err.Severity())
}

func TestRetry_ZeroAttempts(t *testing.T) {
	calls := 0
	_, err := retry.Retry(context.Background(), fastParam(0), func(ctx context.Context) (int, failure.ClassifiedError) {
		calls++
		return 0, nil
	})

	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrZeroAttempt, retryErr.Cause)
	assert.Zero(t, calls)
}

func TestRetry_CanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	param := retry.NewRetryParam(3, time.Hour, 1, time.Hour, 0)

	calls := 0
	_, err := retry.Retry(ctx, param, func(ctx context.Context) (int, failure.ClassifiedError) {
		calls++
		cancel()
		return 0, &mockError{msg: "flaky", retryable: true}
	})

	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrCanceled, retryErr.Cause)
	assert.Equal(t, 1, calls)
}

func TestRetry_NonRetryableReturnedAsIs(t *testing.T) {
	fatal := &mockError{msg: "bad input", retryable: false}
	_, err := retry.Retry(context.Background(), fastParam(3), func(ctx context.Context) (int, failure.ClassifiedError) {
		return 0, fatal
	})

	assert.Same(t, fatal, err)
}

func TestRetry_JitterKeepsAttemptCount(t *testing.T) {
	param := retry.NewRetryParam(3, time.Millisecond, 2.0, 2*time.Millisecond, time.Millisecond)

	calls := 0
	start := time.Now()
	_, err := retry.Retry(context.Background(), param, func(ctx context.Context) (int, failure.ClassifiedError) {
		calls++
		return 0, &mockError{msg: "flaky", retryable: true}
	})

	require.NotNil(t, err)
	assert.Equal(t, 3, calls)
	// two backoffs of at least 1ms and 2ms
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
}
