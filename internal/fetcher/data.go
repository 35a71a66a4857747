package fetcher

import (
	"context"
	"net/url"
	"time"

	"github.com/rohmanhakim/nl-locator/pkg/failure"
)

type Fetcher interface {
	Fetch(ctx context.Context, fetchParam FetchParam) (FetchResult, failure.ClassifiedError)
}

// HTTP boundary

type FetchParam struct {
	fetchUrl  url.URL
	userAgent string
}

func NewFetchParam(fetchUrl url.URL, userAgent string) FetchParam {
	return FetchParam{
		fetchUrl:  fetchUrl,
		userAgent: userAgent,
	}
}

// ClientParam configures the shared HTTP client of a fetcher.
type ClientParam struct {
	Timeout    time.Duration
	MaxAttempt int
	BackoffMin time.Duration
	BackoffMax time.Duration
	// RatePerSecond <= 0 disables throttling.
	RatePerSecond float64
}

func DefaultClientParam() ClientParam {
	return ClientParam{
		Timeout:       25 * time.Second,
		MaxAttempt:    3,
		BackoffMin:    500 * time.Millisecond,
		BackoffMax:    5 * time.Second,
		RatePerSecond: 0,
	}
}

type FetchResult struct {
	url  url.URL
	body []byte
	meta ResponseMeta
}

func (f *FetchResult) URL() url.URL {
	return f.url
}

func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) ContentType() string {
	return f.meta.contentType
}

func (f *FetchResult) Attempts() int {
	return f.meta.attempts
}

type ResponseMeta struct {
	statusCode  int
	contentType string
	attempts    int
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	url url.URL,
	body []byte,
	statusCode int,
	contentType string,
) FetchResult {
	return FetchResult{
		url:  url,
		body: body,
		meta: ResponseMeta{
			statusCode:  statusCode,
			contentType: contentType,
			attempts:    1,
		},
	}
}
