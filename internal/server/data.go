package server

import (
	"context"
	"time"

	"github.com/rohmanhakim/nl-locator/internal/locate"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
)

// Locator answers one locate request.
type Locator interface {
	Locate(ctx context.Context, req locate.Request) (locate.Response, failure.ClassifiedError)
}

type ServerParam struct {
	Addr string
	// Empty disables persisting responses.
	OutputDir string
	// Chrome requests may navigate and wait for a selector, so the write
	// timeout must cover both.
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

func DefaultServerParam() ServerParam {
	return ServerParam{
		Addr:            ":8000",
		WriteTimeout:    120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxBodyBytes:    32 << 20,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type healthBody struct {
	OK bool `json:"ok"`
}
