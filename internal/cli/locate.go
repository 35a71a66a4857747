package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rohmanhakim/nl-locator/internal/config"
	"github.com/rohmanhakim/nl-locator/internal/fetcher"
	"github.com/rohmanhakim/nl-locator/internal/locate"
	"github.com/rohmanhakim/nl-locator/internal/locator"
	"github.com/rohmanhakim/nl-locator/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

var (
	query        string
	htmlFile     string
	targetURL    string
	waitSelector string
	verify       bool
	jsonOutput   bool
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Rank the elements of one page against a query",
	Example: `  nl-locator locate --query "type your email" --html-file login.html
  nl-locator locate --query "sign in button" --url https://example.com/login --verify
  nl-locator locate --query "search box" --url https://example.com --render chrome`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(query) == "" {
			return errors.New("--query is required")
		}

		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		if htmlFile == "" && targetURL == "" && cfg.Render() != string(locate.RenderChrome) {
			return errors.New("provide --html-file or --url (or --render chrome to reuse the open page)")
		}
		return RunLocate(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	locateCmd.Flags().StringVarP(&query, "query", "q", "", "natural-language description of the element")
	locateCmd.Flags().StringVar(&htmlFile, "html-file", "", "read the page from a local HTML file")
	locateCmd.Flags().StringVar(&targetURL, "url", "", "fetch (or open in Chrome) this page")
	locateCmd.Flags().StringVar(&waitSelector, "wait-selector", "", "in chrome mode, wait for this CSS selector after navigation")
	locateCmd.Flags().BoolVar(&verify, "verify", false, "count how many nodes the best XPath and CSS select")
	locateCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full response as JSON")
}

// RunLocate answers one query using the flag values and cfg, printing the
// result to stdout. Logs go to stderr.
func RunLocate(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cfg.LogLevel(), stderr)
	rt := newRuntime(cfg, logger)
	defer rt.Close()

	req := locate.Request{
		URL:          targetURL,
		Query:        query,
		Render:       render,
		WaitSelector: waitSelector,
	}

	if htmlFile != "" {
		content, err := os.ReadFile(htmlFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", htmlFile, err)
		}
		req.HTML = string(content)
	}

	// Verification needs the exact markup that was ranked, so fetch it
	// here instead of inside the service.
	chrome := locate.RenderMode(cfg.Render()) == locate.RenderChrome
	if verify && req.HTML == "" && req.URL != "" && !chrome {
		markup, err := fetchMarkup(ctx, rt, cfg, req.URL)
		if err != nil {
			return err
		}
		req.HTML = markup
	}

	resp, locateErr := rt.service.Locate(ctx, req)
	if locateErr != nil {
		return locateErr
	}

	if cfg.OutputDir() != "" {
		preview := resp.PreviewHTML
		if preview == locate.LivePreviewNote {
			preview = ""
		}
		written, err := rt.store.Write(cfg.OutputDir(), storage.Record{
			SourceURL: req.URL,
			Query:     req.Query,
			Payload:   resp,
			Preview:   preview,
		})
		if err != nil {
			return err
		}
		logger.Info().Str("result", written.ResultPath()).Msg("saved")
	}

	var verified *verification
	if verify {
		if req.HTML == "" {
			logger.Warn().Msg("--verify needs static markup; skipped in chrome mode")
		} else {
			v, err := verifyBest(req.HTML, resp)
			if err != nil {
				return err
			}
			verified = v
		}
	}

	if jsonOutput {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(jsonResult{Response: resp, Verification: verified})
	}

	printResponse(stdout, resp)
	if verified != nil {
		fmt.Fprintf(stdout, "\nverify:     xpath matches %d, css matches %d\n", verified.XPathMatches, verified.CSSMatches)
	}
	return nil
}

// verification counts how many nodes of the ranked markup the best
// locators select.
type verification struct {
	XPathMatches int `json:"xpathMatches"`
	CSSMatches   int `json:"cssMatches"`
}

// jsonResult is the --json payload: the response fields at the top level
// plus the verification counts when requested.
type jsonResult struct {
	locate.Response
	Verification *verification `json:"verification,omitempty"`
}

func fetchMarkup(ctx context.Context, rt *runtime, cfg config.Config, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid --url: %w", err)
	}
	result, fetchErr := rt.fetcher.Fetch(ctx, fetcher.NewFetchParam(*parsed, cfg.UserAgent()))
	if fetchErr != nil {
		return "", fetchErr
	}
	return string(result.Body()), nil
}

func printResponse(out io.Writer, resp locate.Response) {
	fmt.Fprintf(out, "query:      %s\n", resp.Query)
	fmt.Fprintf(out, "candidates: %d\n", resp.TotalCandidates)
	if resp.Best == nil {
		fmt.Fprintln(out, "best:       none")
		return
	}
	fmt.Fprintf(out, "best:       <%s> score=%d %s\n", resp.Best.Tag, resp.Best.Score, resp.Best.Text)
	fmt.Fprintf(out, "xpath:      %s\n", resp.Best.XPath)
	fmt.Fprintf(out, "css:        %s\n", resp.Best.CSS)
	fmt.Fprintln(out)
	for i, c := range resp.Candidates {
		fmt.Fprintf(out, "%2d. %5d  <%s> %s\n", i+1, c.Score, c.Tag, c.Text)
	}
}

func verifyBest(markup string, resp locate.Response) (*verification, error) {
	if resp.Best == nil {
		return nil, nil
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup for verification: %w", err)
	}
	xpathCount, err := locator.CountXPath(doc, resp.Best.XPath)
	if err != nil {
		return nil, fmt.Errorf("evaluating xpath: %w", err)
	}
	cssCount, err := locator.CountCSS(doc, resp.Best.CSS)
	if err != nil {
		return nil, fmt.Errorf("evaluating css: %w", err)
	}
	return &verification{XPathMatches: xpathCount, CSSMatches: cssCount}, nil
}

func SetQueryForTest(q string) {
	query = q
}

func SetHTMLFileForTest(path string) {
	htmlFile = path
}

func SetURLForTest(rawURL string) {
	targetURL = rawURL
}

func SetVerifyForTest(enabled bool) {
	verify = enabled
}

func SetJSONOutputForTest(enabled bool) {
	jsonOutput = enabled
}
