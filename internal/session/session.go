package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"github.com/rohmanhakim/nl-locator/pkg/retry"
	"github.com/rohmanhakim/nl-locator/pkg/urlutil"
)

/*
Responsibilities
- Own one live browser tab, launched on first use
- Load a page, reusing the current one when it already shows the target
- Wait for an optional selector and a bounded settle time
- Highlight an element in the live page
- Release the browser on Close

One Session serves one caller at a time; every operation holds its lock.
The ranking core never sees a Session, only the markup Load returns.
*/

type Session struct {
	mu           sync.Mutex
	launch       Launcher
	page         Page
	closed       bool
	param        SessionParam
	metadataSink metadata.MetadataSink
}

func NewSession(
	metadataSink metadata.MetadataSink,
	launch Launcher,
	param SessionParam,
) *Session {
	if param.Launch.MaxAttempts < 1 {
		param.Launch.MaxAttempts = 1
	}
	return &Session{
		launch:       launch,
		param:        param,
		metadataSink: metadataSink,
	}
}

// ShouldNavigate decides whether a load must navigate. Without a URL the
// current page is used. With reuse, navigation is skipped when the
// current page already shows the target.
func ShouldNavigate(target, current string, reuse bool) bool {
	if target == "" {
		return false
	}
	if !reuse {
		return true
	}
	return urlutil.NormalizeForReuse(target) != urlutil.NormalizeForReuse(current)
}

// Load returns the serialized DOM of the live page after optional
// navigation and waiting.
func (s *Session) Load(ctx context.Context, param LoadParam) (string, failure.ClassifiedError) {
	callerMethod := "Session.Load"
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.ensurePage(ctx)
	if err != nil {
		s.recordError(callerMethod, param.URL, err)
		return "", err
	}

	current, curErr := page.CurrentURL(ctx)
	if curErr != nil {
		current = ""
	}

	if ShouldNavigate(param.URL, current, param.Reuse) {
		if navErr := page.Navigate(ctx, param.URL); navErr != nil {
			err := &SessionError{
				Message:   fmt.Sprintf("%s: %v", param.URL, navErr),
				Retryable: true,
				Cause:     ErrCauseNavigateFailure,
			}
			s.recordError(callerMethod, param.URL, err)
			return "", err
		}
	}

	if param.WaitSelector != "" {
		s.waitForSelector(ctx, page, param.WaitSelector)
	}

	if param.WaitMs > 0 {
		settle := min(time.Duration(param.WaitMs)*time.Millisecond, s.param.MaxSettle)
		sleep(ctx, settle)
	}

	markup, readErr := page.HTML(ctx)
	if readErr != nil {
		err := &SessionError{
			Message:   fmt.Sprintf("%v", readErr),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
		}
		s.recordError(callerMethod, param.URL, err)
		return "", err
	}
	return markup, nil
}

// Highlight marks the element addressed by xpath, or by css when the
// xpath finds nothing. It reports whether an element was marked; script
// failures count as not marked.
func (s *Session) Highlight(ctx context.Context, xpath, css string) (bool, failure.ClassifiedError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.ensurePage(ctx)
	if err != nil {
		s.recordError("Session.Highlight", "", err)
		return false, err
	}
	marked, hlErr := page.Highlight(ctx, xpath, css)
	if hlErr != nil {
		return false, nil
	}
	return marked, nil
}

// Close releases the browser. The session cannot be used afterwards.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.page == nil {
		return nil
	}
	err := s.page.Close()
	s.page = nil
	return err
}

func (s *Session) ensurePage(ctx context.Context) (Page, *SessionError) {
	if s.closed {
		return nil, &SessionError{
			Message:   "session is closed",
			Retryable: false,
			Cause:     ErrCauseClosed,
		}
	}
	if s.page != nil {
		return s.page, nil
	}
	page, err := retry.Retry(ctx, s.param.Launch, func(ctx context.Context) (Page, failure.ClassifiedError) {
		page, err := s.launch(ctx)
		if err != nil {
			return nil, &SessionError{
				Message:   err.Error(),
				Retryable: true,
				Cause:     ErrCauseLaunchFailure,
			}
		}
		return page, nil
	})
	if err != nil {
		return nil, &SessionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseLaunchFailure,
		}
	}
	s.page = page
	return page, nil
}

// waitForSelector polls until selector matches or the timeout passes.
// Script errors end the wait early without failing the load.
func (s *Session) waitForSelector(ctx context.Context, page Page, selector string) {
	deadline := time.Now().Add(s.param.SelectorTimeout)
	for time.Now().Before(deadline) {
		found, err := page.HasSelector(ctx, selector)
		if err != nil || found {
			return
		}
		if !sleep(ctx, s.param.PollInterval) {
			return
		}
	}
}

func (s *Session) recordError(callerMethod, pageURL string, err *SessionError) {
	s.metadataSink.RecordError(
		time.Now(),
		"session",
		callerMethod,
		mapSessionErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, pageURL),
			metadata.NewAttr(metadata.AttrRender, "chrome"),
		},
	)
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
