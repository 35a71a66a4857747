package retry

import (
	"context"
	"fmt"

	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"github.com/rohmanhakim/retrier"
)

// Retry executes fn up to MaxAttempts times, sleeping with exponential
// backoff and jitter between attempts. Only retryable errors trigger
// another attempt. A canceled ctx stops the loop during a backoff.
//
// The loop itself is retrier.Retry; this wrapper keeps callers on
// failure.ClassifiedError.
//
// Type parameter T represents the return type of the function being retried.
func Retry[T any](
	ctx context.Context,
	retryParam RetryParam,
	fn func(ctx context.Context) (T, failure.ClassifiedError),
) (T, failure.ClassifiedError) {
	var zero T

	if retryParam.MaxAttempts < 1 {
		return zero, &RetryError{
			Message:   "max attempt cannot be 0",
			Cause:     ErrZeroAttempt,
			Retryable: false,
		}
	}

	var lastErr failure.ClassifiedError
	result := retrier.Retry(ctx, retrier.NewNoOpLogger(), func() (T, error) {
		value, err := fn(ctx)
		if err != nil {
			lastErr = err
			return value, attemptError{err: err}
		}
		return value, nil
	}, options(retryParam)...)

	value, _, err := result.Decompose()
	if err == nil {
		return value, nil
	}

	retryErr, ok := err.(*retrier.RetryError)
	if !ok {
		// non-retryable error, handed back untouched
		return zero, lastErr
	}
	switch retryErr.Cause {
	case retrier.ErrContextCancelled:
		return zero, &RetryError{
			Message:   ctx.Err().Error(),
			Cause:     ErrCanceled,
			Retryable: false,
			Last:      lastErr,
		}
	default:
		return zero, &RetryError{
			Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
			Cause:     ErrExhaustedAttempts,
			Retryable: true,
			Last:      lastErr,
		}
	}
}

func options(retryParam RetryParam) []retrier.RetryOption {
	multiplier := retryParam.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	opts := []retrier.RetryOption{
		retrier.WithMaxAttempts(retryParam.MaxAttempts),
		retrier.WithInitialDuration(retryParam.InitialDelay),
		retrier.WithMultiplier(multiplier),
		retrier.WithJitter(retryParam.Jitter),
	}
	if retryParam.MaxDelay > 0 {
		opts = append(opts, retrier.WithMaxDuration(retryParam.MaxDelay))
	}
	return opts
}

// attemptError carries a ClassifiedError through retrier, translating its
// classification into a retry policy.
type attemptError struct {
	err failure.ClassifiedError
}

func (a attemptError) Error() string {
	return a.err.Error()
}

func (a attemptError) Unwrap() error {
	return a.err
}

func (a attemptError) RetryPolicy() retrier.RetryPolicy {
	if isErrorRetryable(a.err) {
		return retrier.RetryPolicyAuto
	}
	return retrier.RetryPolicyNever
}

// isErrorRetryable prefers an explicit IsRetryable method and falls back
// to the severity classification.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return err.Severity() == failure.SeverityRecoverable
}
