package retry

import "time"

// RetryParam holds the parameters for retry logic.
// These parameters are passed from outside (e.g., config) and should not
// be known by the retry handler internally.
type RetryParam struct {
	MaxAttempts int
	// Delay before the second attempt; later delays grow by Multiplier
	InitialDelay time.Duration
	Multiplier   float64
	// Upper bound of a single delay, jitter excluded
	MaxDelay time.Duration
	// Random extra delay in [0, Jitter)
	Jitter time.Duration
}

// NewRetryParam creates a new RetryParam with the given settings.
func NewRetryParam(
	maxAttempts int,
	initialDelay time.Duration,
	multiplier float64,
	maxDelay time.Duration,
	jitter time.Duration,
) RetryParam {
	return RetryParam{
		MaxAttempts:  maxAttempts,
		InitialDelay: initialDelay,
		Multiplier:   multiplier,
		MaxDelay:     maxDelay,
		Jitter:       jitter,
	}
}
