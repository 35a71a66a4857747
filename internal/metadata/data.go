package metadata

import (
	"time"
)

type FetchEvent struct {
	fetchUrl    string
	httpStatus  int
	duration    time.Duration
	contentType string
	retryCount  int
}

/*
LocateEvent
  - Summarizes one ranking pass over one document
  - Contains only counts, the best score and the duration
  - Is recorded once per ranked document
  - Must not influence ranking or result selection
*/
type LocateEvent struct {
	query           string
	totalCandidates int
	bestScore       int
	hasBest         bool
	duration        time.Duration
}

type ArtifactKind string

const (
	ArtifactResult  ArtifactKind = "result"
	ArtifactPreview ArtifactKind = "preview"
)

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used for retry or abort decisions.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	Non-goals:
	 - ErrorCause does not encode severity.
	 - ErrorCause does not imply retryability.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

Meaning:
  - Failure caused by network transport or remote availability.

Examples:
  - TCP timeouts
  - DNS resolution failures
  - HTTP 5xx after retries

# CausePolicyDisallow

Meaning:
  - The remote side refused to serve the document.

Examples:
  - HTTP 403 / 401
  - HTTP 429

# CauseContentInvalid

Meaning:
  - Content was obtained but could not be processed meaningfully.

Examples:
  - Non-HTML responses
  - Unreadable response bodies

# CauseStorageFailure

Meaning:
  - Failure while persisting result artifacts.

# CauseInputInvalid

Meaning:
  - The caller supplied an unusable request.

Examples:
  - Missing query
  - Neither a URL, markup nor a live page to reuse

# CauseBrowserFailure

Meaning:
  - The live browser could not be launched, navigated or scripted.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CausePolicyDisallow
	CauseContentInvalid
	CauseStorageFailure
	CauseInputInvalid
	CauseBrowserFailure
)

var causeNames = map[ErrorCause]string{
	CauseUnknown:        "unknown",
	CauseNetworkFailure: "network_failure",
	CausePolicyDisallow: "policy_disallow",
	CauseContentInvalid: "content_invalid",
	CauseStorageFailure: "storage_failure",
	CauseInputInvalid:   "input_invalid",
	CauseBrowserFailure: "browser_failure",
}

func (c ErrorCause) String() string {
	if name, ok := causeNames[c]; ok {
		return name
	}
	return causeNames[CauseUnknown]
}

type ErrorRecord struct {
	packageName string
	action      string
	cause       ErrorCause
	errorString string
	observedAt  time.Time
	attrs       []Attribute
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrQuery      AttributeKey = "query"
	AttrRender     AttributeKey = "render"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrWritePath  AttributeKey = "write_path"
)
