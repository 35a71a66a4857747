package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rohmanhakim/nl-locator/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	logLevel     string
	userAgent    string
	fetchTimeout time.Duration
	outputDir    string
	headless     bool
	chromeURL    string
	render       string
	waitMs       int
	noReuse      bool
	topN         int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nl-locator",
	Short: "Find the page element a natural-language description refers to.",
	Long: `nl-locator ranks the interactive elements of an HTML page against a
natural-language query such as "type your email" or "the sign in button" and
returns the best match with a stable XPath and CSS selector.

Pages come from a file, a plain HTTP fetch, or a live Chrome tab that is kept
open between requests. Run "nl-locator serve" for the HTTP API and UI.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteArgs runs the command tree with explicit arguments and output.
func ExecuteArgs(args []string, stdout, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", 0, "timeout for a single HTTP fetch attempt")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory to store results and previews (empty disables)")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", false, "run Chrome without a window")
	rootCmd.PersistentFlags().StringVar(&chromeURL, "chrome-url", "", "DevTools URL of a running Chrome to attach to")
	rootCmd.PersistentFlags().StringVar(&render, "render", "", "default render mode: requests or chrome")
	rootCmd.PersistentFlags().IntVar(&waitMs, "wait-ms", 0, "settle time in milliseconds after a Chrome navigation")
	rootCmd.PersistentFlags().BoolVar(&noReuse, "no-reuse", false, "always navigate, even when Chrome already shows the page")
	rootCmd.PersistentFlags().IntVar(&topN, "top", 0, "number of candidates to return")

	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// InitConfigWithError layers the config file (or defaults), NLLOCATOR_*
// environment variables and command-line flags, in that order.
func InitConfigWithError() (config.Config, error) {
	builder := config.WithDefault()
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		builder = &cfg
	}

	builder, err := builder.WithEnv()
	if err != nil {
		return config.Config{}, err
	}

	// Override with CLI flag values where provided
	if logLevel != "" {
		builder = builder.WithLogLevel(logLevel)
	}

	if userAgent != "" {
		builder = builder.WithUserAgent(userAgent)
	}

	if fetchTimeout > 0 {
		builder = builder.WithFetchTimeout(fetchTimeout)
	}

	if outputDir != "" {
		builder = builder.WithOutputDir(outputDir)
	}

	if headless {
		builder = builder.WithHeadless(true)
	}

	if chromeURL != "" {
		builder = builder.WithChromeURL(chromeURL)
	}

	if render != "" {
		builder = builder.WithRender(render)
	}

	if waitMs > 0 {
		builder = builder.WithWaitMs(waitMs)
	}

	if noReuse {
		builder = builder.WithReuse(false)
	}

	if topN > 0 {
		builder = builder.WithTopN(topN)
	}

	if listenAddr != "" {
		builder = builder.WithListenAddr(listenAddr)
	}

	return builder.Build()
}

func ResetFlags() {
	cfgFile = ""
	logLevel = ""
	userAgent = ""
	fetchTimeout = 0
	outputDir = ""
	headless = false
	chromeURL = ""
	render = ""
	waitMs = 0
	noReuse = false
	topN = 0
	listenAddr = ""
	query = ""
	htmlFile = ""
	targetURL = ""
	waitSelector = ""
	verify = false
	jsonOutput = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetRenderForTest(mode string) {
	render = mode
}

func SetTopNForTest(n int) {
	topN = n
}

func SetNoReuseForTest(disable bool) {
	noReuse = disable
}

func SetListenAddrForTest(addr string) {
	listenAddr = addr
}
