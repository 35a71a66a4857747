package session

import (
	"context"
	"time"

	"github.com/rohmanhakim/nl-locator/pkg/retry"
)

// Page is the single browser tab a Session drives.
type Page interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL(ctx context.Context) (string, error)
	HasSelector(ctx context.Context, selector string) (bool, error)
	HTML(ctx context.Context) (string, error)
	Highlight(ctx context.Context, xpath, css string) (bool, error)
	Close() error
}

// Launcher starts a browser and opens the tab a Session keeps for its
// whole lifetime.
type Launcher func(ctx context.Context) (Page, error)

type LoadParam struct {
	URL          string
	WaitSelector string
	WaitMs       int
	Reuse        bool
}

type SessionParam struct {
	PollInterval    time.Duration
	SelectorTimeout time.Duration
	MaxSettle       time.Duration
	// Launch retries a failed browser start. Zero attempts means one.
	Launch retry.RetryParam
}

func DefaultSessionParam() SessionParam {
	return SessionParam{
		PollInterval:    250 * time.Millisecond,
		SelectorTimeout: 20 * time.Second,
		MaxSettle:       5 * time.Second,
		Launch:          retry.NewRetryParam(2, time.Second, 2.0, 4*time.Second, 250*time.Millisecond),
	}
}
