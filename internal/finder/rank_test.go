package finder_test

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/rohmanhakim/nl-locator/internal/finder"
	"github.com/rohmanhakim/nl-locator/internal/locator"
	"github.com/rohmanhakim/nl-locator/internal/metadata/metadatatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginPage = `<!doctype html>
<html><body>
	<h1>Sign in</h1>
	<form id="login">
		<label for="user">Username</label>
		<input id="user" name="username" placeholder="jane.doe">
		<label for="pw">Password</label>
		<input id="pw" name="password" type="password">
		<button type="submit" data-testid="login-submit">Log in</button>
	</form>
	<a href="/forgot">Forgot password?</a>
</body></html>`

func TestRank_EmptyDocument(t *testing.T) {
	result := finder.Rank("", "anything")

	assert.Nil(t, result.Best)
	assert.NotNil(t, result.Candidates)
	assert.Empty(t, result.Candidates)
}

func TestRank_NoCandidates(t *testing.T) {
	result := finder.Rank(`<div><p>plain text</p></div>`, "button")

	assert.Nil(t, result.Best)
	assert.Empty(t, result.Candidates)
}

func TestRank_FieldIntent(t *testing.T) {
	result := finder.Rank(`
		<label>Username <input name="username"></label>
		<button>Submit</button>`, "type your username")

	require.NotNil(t, result.Best)
	assert.Equal(t, "input", result.Best.Tag)
	assert.Equal(t, "username", result.Best.Name)
}

func TestRank_LoginButton(t *testing.T) {
	result := finder.Rank(loginPage, "click the log in button")

	require.NotNil(t, result.Best)
	assert.Equal(t, "button", result.Best.Tag)
	assert.Equal(t, "login-submit", result.Best.DataTestID)
	assert.Equal(t, `[data-testid='login-submit']`, result.Best.CSS)
}

func TestRank_PasswordField(t *testing.T) {
	result := finder.Rank(loginPage, "enter the password")

	require.NotNil(t, result.Best)
	assert.Equal(t, "pw", result.Best.ID)
	assert.Equal(t, "#pw", result.Best.CSS)
}

func TestRank_SortedDescendingWithBestFirst(t *testing.T) {
	result := finder.Rank(loginPage, "username")

	require.NotEmpty(t, result.Candidates)
	assert.Equal(t, result.Candidates[0], *result.Best)
	for i := 1; i < len(result.Candidates); i++ {
		assert.GreaterOrEqual(t, result.Candidates[i-1].Score, result.Candidates[i].Score)
	}
}

func TestRank_TiesKeepDocumentOrder(t *testing.T) {
	result := finder.Rank(`<button>A1</button><button>B2</button><button>C3</button>`, "zzzz")

	require.Len(t, result.Candidates, 3)
	assert.Equal(t, []string{"n0", "n1", "n2"}, []string{
		result.Candidates[0].NodeID,
		result.Candidates[1].NodeID,
		result.Candidates[2].NodeID,
	})
}

func TestRank_Deterministic(t *testing.T) {
	first := finder.Rank(loginPage, "type your username")
	second := finder.Rank(loginPage, "type your username")

	assert.Equal(t, first, second)
}

func TestRank_ConcurrentCallsAgree(t *testing.T) {
	want := finder.Rank(loginPage, "log in")

	var wg sync.WaitGroup
	results := make([]finder.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = finder.Rank(loginPage, "log in")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRank_EveryCandidateHasLocators(t *testing.T) {
	result := finder.Rank(loginPage, "anything")
	doc, err := htmlquery.Parse(strings.NewReader(loginPage))
	require.NoError(t, err)

	for _, c := range result.Candidates {
		assert.NotEmpty(t, c.CSS, c.NodeID)
		assert.NotEmpty(t, c.XPath, c.NodeID)

		count, err := locator.CountXPath(doc, c.XPath)
		require.NoError(t, err)
		assert.Equal(t, 1, count, c.XPath)
	}
}

func TestRank_TextTruncated(t *testing.T) {
	long := strings.Repeat("x", 400)
	result := finder.Rank(`<button>`+long+`</button>`, "x")

	require.NotNil(t, result.Best)
	assert.Len(t, result.Best.Text, 160)
}

func TestElementScore_JSONFieldNames(t *testing.T) {
	result := finder.Rank(`<button id="go" aria-label="Go now">Go</button>`, "go")
	require.NotNil(t, result.Best)

	raw, err := json.Marshal(result.Best)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{
		"nodeId", "tag", "text", "id", "name", "dataTestId",
		"ariaLabel", "placeholder", "role", "css", "xpath", "score",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 12)
	assert.Equal(t, "Go now", fields["ariaLabel"])
}

func TestResult_Top(t *testing.T) {
	result := finder.Rank(loginPage, "anything")
	total := len(result.Candidates)

	assert.Len(t, result.Top(2), 2)
	assert.Len(t, result.Top(total+5), total)
	assert.Len(t, result.Top(-1), total)
}

func TestFinder_RecordsLocate(t *testing.T) {
	sink := &metadatatest.RecordingSink{}
	f := finder.NewFinder(sink)

	result := f.Rank(loginPage, "log in")

	require.Len(t, sink.Locates, 1)
	assert.Equal(t, "log in", sink.Locates[0].Query)
	assert.Equal(t, len(result.Candidates), sink.Locates[0].TotalCandidates)
	assert.True(t, sink.Locates[0].HasBest)
	assert.Equal(t, result.Best.Score, sink.Locates[0].BestScore)
	assert.Empty(t, sink.Errors)
}

func TestFinder_RecordsEmptyResult(t *testing.T) {
	sink := &metadatatest.RecordingSink{}
	f := finder.NewFinder(sink)

	f.Rank("", "q")

	require.Len(t, sink.Locates, 1)
	assert.False(t, sink.Locates[0].HasBest)
	assert.Zero(t, sink.Locates[0].TotalCandidates)
}
