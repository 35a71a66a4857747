package locate

import (
	"strings"

	"github.com/rohmanhakim/nl-locator/internal/finder"
)

type RenderMode string

const (
	RenderRequests RenderMode = "requests"
	RenderChrome   RenderMode = "chrome"
)

const (
	DefaultWaitMs = 1500
	DefaultTopN   = 10

	// previewHtml in chrome mode, where the highlight lives in the browser
	LivePreviewNote = "<!-- live highlight in persistent Chrome tab -->"
)

// Request is one locate call. Either HTML or URL supplies the document; in
// chrome mode both may be omitted to reuse the page already open.
type Request struct {
	URL          string `json:"url,omitempty"`
	HTML         string `json:"html,omitempty"`
	Query        string `json:"query"`
	Render       string `json:"render,omitempty"`
	WaitSelector string `json:"wait_selector,omitempty"`
	// nil or 0 means the service default, DefaultWaitMs unless configured
	WaitMs *int `json:"wait_ms,omitempty"`
	// nil means the service default, true unless configured
	Reuse *bool `json:"reuse,omitempty"`
}

func (r Request) renderMode(fallback RenderMode) RenderMode {
	if r.Render == "" {
		return fallback
	}
	return RenderMode(strings.ToLower(r.Render))
}

func (r Request) waitMs(fallback int) int {
	if r.WaitMs == nil || *r.WaitMs == 0 {
		return fallback
	}
	return *r.WaitMs
}

func (r Request) reuse(fallback bool) bool {
	if r.Reuse == nil {
		return fallback
	}
	return *r.Reuse
}

type Response struct {
	Query           string                `json:"query"`
	TotalCandidates int                   `json:"totalCandidates"`
	Best            *finder.ElementScore  `json:"best"`
	Candidates      []finder.ElementScore `json:"candidates"`
	PreviewHTML     string                `json:"previewHtml"`
}
