package locate

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rohmanhakim/nl-locator/internal/cache"
	"github.com/rohmanhakim/nl-locator/internal/fetcher"
	"github.com/rohmanhakim/nl-locator/internal/finder"
	"github.com/rohmanhakim/nl-locator/internal/highlight"
	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/internal/session"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"github.com/rohmanhakim/nl-locator/pkg/hashutil"
	"github.com/rohmanhakim/nl-locator/pkg/urlutil"
)

/*
Responsibilities
- Validate the request
- Resolve the document: inline markup, a stateless fetch, or the live browser
- Rank candidates, memoized by (document, query)
- Highlight the best candidate, live or in a static preview
- Trim the candidate list for the response

Ranking is a pure function of (document, query), so cached results are
returned without re-ranking.
*/

// Browser is the live page a chrome-mode request reads from and
// highlights in.
type Browser interface {
	Load(ctx context.Context, param session.LoadParam) (string, failure.ClassifiedError)
	Highlight(ctx context.Context, xpath, css string) (bool, failure.ClassifiedError)
}

// ServiceParam holds the defaults applied to requests that leave a field
// unset. Zero values fall back to the package defaults.
type ServiceParam struct {
	UserAgent     string
	TopN          int
	DefaultRender RenderMode
	DefaultWaitMs int
	DisableReuse  bool
}

type Service struct {
	metadataSink metadata.MetadataSink
	fetcher      fetcher.Fetcher
	browser      Browser
	finder       finder.Finder
	highlighter  highlight.Highlighter
	results      cache.Cache[finder.Result]
	param        ServiceParam
}

// NewService wires a locate service. browser and results may be nil to
// disable chrome rendering and memoization.
func NewService(
	metadataSink metadata.MetadataSink,
	htmlFetcher fetcher.Fetcher,
	browser Browser,
	highlighter highlight.Highlighter,
	results cache.Cache[finder.Result],
	param ServiceParam,
) *Service {
	if param.TopN <= 0 {
		param.TopN = DefaultTopN
	}
	if param.DefaultRender == "" {
		param.DefaultRender = RenderRequests
	}
	if param.DefaultWaitMs <= 0 {
		param.DefaultWaitMs = DefaultWaitMs
	}
	return &Service{
		metadataSink: metadataSink,
		fetcher:      htmlFetcher,
		browser:      browser,
		finder:       finder.NewFinder(metadataSink),
		highlighter:  highlighter,
		results:      results,
		param:        param,
	}
}

func (s *Service) Locate(ctx context.Context, req Request) (Response, failure.ClassifiedError) {
	callerMethod := "Service.Locate"

	if strings.TrimSpace(req.Query) == "" {
		return Response{}, s.reject(callerMethod, req, inputError(ErrCauseMissingQuery, ""))
	}

	mode := req.renderMode(s.param.DefaultRender)
	if mode != RenderRequests && mode != RenderChrome {
		return Response{}, s.reject(callerMethod, req, inputError(ErrCauseInvalidRender, req.Render))
	}
	if mode == RenderChrome && s.browser == nil {
		return Response{}, s.reject(callerMethod, req, inputError(ErrCauseBrowserUnavailable, ""))
	}

	markup, err := s.resolveDocument(ctx, req, mode)
	if err != nil {
		if locateErr, ok := err.(*LocateError); ok {
			return Response{}, s.reject(callerMethod, req, locateErr)
		}
		return Response{}, err
	}

	result := s.rank(markup, req.Query)

	var preview string
	if mode == RenderChrome {
		if result.Best != nil {
			if _, err := s.browser.Highlight(ctx, result.Best.XPath, result.Best.CSS); err != nil {
				return Response{}, err
			}
		}
		preview = LivePreviewNote
	} else {
		nodeID := ""
		if result.Best != nil {
			nodeID = result.Best.NodeID
		}
		preview = s.highlighter.Preview(markup, nodeID)
	}

	return Response{
		Query:           req.Query,
		TotalCandidates: len(result.Candidates),
		Best:            result.Best,
		Candidates:      result.Top(s.param.TopN),
		PreviewHTML:     preview,
	}, nil
}

func (s *Service) resolveDocument(ctx context.Context, req Request, mode RenderMode) (string, failure.ClassifiedError) {
	markup := req.HTML

	if markup == "" && req.URL != "" {
		if !urlutil.IsHTTP(req.URL) {
			return "", inputError(ErrCauseInvalidURL, req.URL)
		}
		var err failure.ClassifiedError
		if mode == RenderChrome {
			markup, err = s.browser.Load(ctx, session.LoadParam{
				URL:          req.URL,
				WaitSelector: req.WaitSelector,
				WaitMs:       req.waitMs(s.param.DefaultWaitMs),
				Reuse:        req.reuse(!s.param.DisableReuse),
			})
		} else {
			markup, err = s.fetch(ctx, req.URL)
		}
		if err != nil {
			return "", err
		}
	}

	if markup == "" && mode == RenderChrome {
		var err failure.ClassifiedError
		markup, err = s.browser.Load(ctx, session.LoadParam{
			WaitSelector: req.WaitSelector,
			WaitMs:       req.waitMs(s.param.DefaultWaitMs),
			Reuse:        true,
		})
		if err != nil {
			return "", err
		}
	}

	if markup == "" {
		return "", inputError(ErrCauseMissingDocument, "")
	}
	return markup, nil
}

func (s *Service) fetch(ctx context.Context, rawURL string) (string, failure.ClassifiedError) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", inputError(ErrCauseInvalidURL, rawURL)
	}
	result, fetchErr := s.fetcher.Fetch(ctx, fetcher.NewFetchParam(*parsed, s.param.UserAgent))
	if fetchErr != nil {
		return "", fetchErr
	}
	return string(result.Body()), nil
}

func (s *Service) rank(markup, query string) finder.Result {
	if s.results == nil {
		return s.finder.Rank(markup, query)
	}
	key := hashutil.Fingerprint(markup, query)
	if cached, ok := s.results.Get(key); ok {
		return cached
	}
	result := s.finder.Rank(markup, query)
	s.results.Put(key, result)
	return result
}

func (s *Service) reject(callerMethod string, req Request, err *LocateError) *LocateError {
	s.metadataSink.RecordError(
		time.Now(),
		"locate",
		callerMethod,
		mapLocateErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, req.URL),
			metadata.NewAttr(metadata.AttrQuery, req.Query),
			metadata.NewAttr(metadata.AttrRender, req.Render),
		},
	)
	return err
}
