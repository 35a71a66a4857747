package fetcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

/*
Responsibilities

- Perform HTTP requests with browser-like headers
- Apply timeouts, throttling and bounded retries
- Classify responses
- Decode the body to UTF-8 using the declared charset

Fetch Semantics

- Only successful HTML responses are returned; a missing Content-Type
  is sniffed from the body
- 5xx, 429 and transport failures are retried with exponential backoff
- Every fetch is recorded with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

const (
	maxBodyBytes = 16 << 20
	sniffLen     = 512
)

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	client       *retryablehttp.Client
	limiter      *rate.Limiter
}

func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
	clientParam ClientParam,
) HtmlFetcher {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = max(clientParam.MaxAttempt-1, 0)
	client.RetryWaitMin = clientParam.BackoffMin
	client.RetryWaitMax = clientParam.BackoffMax
	client.HTTPClient.Timeout = clientParam.Timeout
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.RequestLogHook = countAttempt

	limiter := rate.NewLimiter(rate.Inf, 0)
	if clientParam.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(clientParam.RatePerSecond), max(1, int(clientParam.RatePerSecond)))
	}

	return HtmlFetcher{
		metadataSink: metadataSink,
		client:       client,
		limiter:      limiter,
	}
}

type attemptsKey struct{}

type attemptCounter struct {
	attempts int
}

// countAttempt runs before every attempt, including the first.
func countAttempt(_ retryablehttp.Logger, req *http.Request, retryNumber int) {
	if counter, ok := req.Context().Value(attemptsKey{}).(*attemptCounter); ok {
		counter.attempts = retryNumber + 1
	}
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HtmlFetcher.Fetch"
	startTime := time.Now()

	counter := &attemptCounter{}
	ctx = context.WithValue(ctx, attemptsKey{}, counter)

	result, err := h.performFetch(ctx, fetchParam.fetchUrl, fetchParam.userAgent)
	result.meta.attempts = counter.attempts

	var statusCode int
	var contentType string
	if err != nil {
		statusCode = err.StatusCode
	} else {
		statusCode = result.Code()
		contentType = result.ContentType()
	}

	h.metadataSink.RecordFetch(
		fetchParam.fetchUrl.String(),
		statusCode,
		time.Since(startTime),
		contentType,
		max(counter.attempts-1, 0),
	)

	if err != nil {
		h.recordFetchError(callerMethod, fetchParam.fetchUrl, err)
		return FetchResult{}, err
	}

	return result, nil
}

func (h *HtmlFetcher) recordFetchError(callerMethod string, fetchUrl url.URL, err *FetchError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
	}
	if err.StatusCode != 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(err.StatusCode)))
	}
	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
}

func (h *HtmlFetcher) performFetch(ctx context.Context, fetchUrl url.URL, userAgent string) (FetchResult, *FetchError) {
	if err := h.limiter.Wait(ctx); err != nil {
		return FetchResult{}, transportError(err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	for key, value := range requestHeaders(userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return FetchResult{}, transportError(err)
	}
	defer resp.Body.Close()

	if fetchErr := classifyStatus(resp.StatusCode); fetchErr != nil {
		return FetchResult{}, fetchErr
	}

	body := bufio.NewReaderSize(io.LimitReader(resp.Body, maxBodyBytes), sniffLen)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		// servers that omit the header get the body sniffed instead
		head, _ := body.Peek(sniffLen)
		contentType = http.DetectContentType(head)
		if !isHTMLContent(contentType) && !strings.HasPrefix(contentType, "text/plain") {
			return FetchResult{}, &FetchError{
				Message:    fmt.Sprintf("non-HTML content sniffed: %s", contentType),
				Retryable:  false,
				Cause:      ErrCauseContentTypeInvalid,
				StatusCode: resp.StatusCode,
			}
		}
	} else if !isHTMLContent(contentType) {
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("non-HTML content type: %s", contentType),
			Retryable:  false,
			Cause:      ErrCauseContentTypeInvalid,
			StatusCode: resp.StatusCode,
		}
	}

	reader, err := charset.NewReader(body, contentType)
	if err != nil {
		return FetchResult{}, readError(err, resp.StatusCode)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return FetchResult{}, readError(err, resp.StatusCode)
	}

	return FetchResult{
		url:  fetchUrl,
		body: decoded,
		meta: ResponseMeta{
			statusCode:  resp.StatusCode,
			contentType: contentType,
		},
	}, nil
}

func classifyStatus(status int) *FetchError {
	switch {
	case status >= 500:
		return &FetchError{
			Message:    fmt.Sprintf("server error: %d", status),
			Retryable:  true,
			Cause:      ErrCauseRequest5xx,
			StatusCode: status,
		}
	case status == http.StatusTooManyRequests:
		return &FetchError{
			Message:    "rate limited (429)",
			Retryable:  true,
			Cause:      ErrCauseRequestTooMany,
			StatusCode: status,
		}
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return &FetchError{
			Message:    fmt.Sprintf("access forbidden (%d)", status),
			Retryable:  false,
			Cause:      ErrCauseRequestPageForbidden,
			StatusCode: status,
		}
	case status >= 400:
		return &FetchError{
			Message:    fmt.Sprintf("client error: %d", status),
			Retryable:  false,
			Cause:      ErrCauseRequestClientError,
			StatusCode: status,
		}
	case status >= 300:
		// http.Client follows redirects, so a 3xx here means the chain was cut
		return &FetchError{
			Message:    fmt.Sprintf("redirect error: %d", status),
			Retryable:  false,
			Cause:      ErrCauseRedirectLimitExceeded,
			StatusCode: status,
		}
	}
	return nil
}

func transportError(err error) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Message:   fmt.Sprintf("request timed out: %v", err),
			Retryable: true,
			Cause:     ErrCauseTimeout,
		}
	}
	return &FetchError{
		Message:   fmt.Sprintf("request failed: %v", err),
		Retryable: true,
		Cause:     ErrCauseNetworkFailure,
	}
}

func readError(err error, status int) *FetchError {
	return &FetchError{
		Message:    fmt.Sprintf("failed to read response body: %v", err),
		Retryable:  true,
		Cause:      ErrCauseReadResponseBodyError,
		StatusCode: status,
	}
}

func isHTMLContent(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml")
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Cache-Control":   "no-cache",
		"Pragma":          "no-cache",
	}
}
