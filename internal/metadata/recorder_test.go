package metadata_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestRecorder_RecordError(t *testing.T) {
	var buf bytes.Buffer
	rec := metadata.NewRecorder("w1", zerolog.New(&buf))

	rec.RecordError(
		time.Now(),
		"fetcher",
		"HtmlFetcher.Fetch",
		metadata.CauseNetworkFailure,
		errors.New("dial tcp: timeout").Error(),
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, "https://example.com")},
	)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "w1", entries[0]["worker"])
	assert.Equal(t, "fetcher", entries[0]["package"])
	assert.Equal(t, "network_failure", entries[0]["cause"])
	assert.Equal(t, "https://example.com", entries[0]["url"])
}

func TestRecorder_RecordLocate(t *testing.T) {
	var buf bytes.Buffer
	rec := metadata.NewRecorder("w1", zerolog.New(&buf))

	rec.RecordLocate("login button", 4, 512, true, 3*time.Millisecond)
	rec.RecordLocate("nothing", 0, 0, false, time.Millisecond)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "locate", entries[0]["event"])
	assert.Equal(t, float64(4), entries[0]["candidates"])
	assert.Equal(t, float64(512), entries[0]["best_score"])
	_, hasBest := entries[1]["best_score"]
	assert.False(t, hasBest)
}

func TestRecorder_RecordArtifact(t *testing.T) {
	var buf bytes.Buffer
	rec := metadata.NewRecorder("w1", zerolog.New(&buf))

	rec.RecordArtifact(metadata.ArtifactPreview, "/tmp/out/abc.html", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "preview", entries[0]["kind"])
	assert.Equal(t, "/tmp/out/abc.html", entries[0]["path"])
}

func TestErrorCause_String(t *testing.T) {
	assert.Equal(t, "input_invalid", metadata.CauseInputInvalid.String())
	assert.Equal(t, "unknown", metadata.ErrorCause(99).String())
}

func TestNoopSink_ImplementsSink(t *testing.T) {
	var sink metadata.MetadataSink = &metadata.NoopSink{}
	sink.RecordLocate("q", 0, 0, false, 0)
}
