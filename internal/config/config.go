package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// EnvPrefix namespaces environment overrides, e.g. NLLOCATOR_TOP_N.
const EnvPrefix = "NLLOCATOR"

type Config struct {
	//===============
	// Server
	//===============
	// Address the HTTP API listens on
	listenAddr string

	//===============
	// Fetch
	//===============
	// Maximum time of a single fetch attempt
	fetchTimeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string
	// Maximum attempts per fetch, first one included
	maxAttempt int
	// Lower and upper bound of the retry backoff
	backoffMin time.Duration
	backoffMax time.Duration
	// Requests per second across all fetches. 0 disables throttling
	fetchRate float64

	//===============
	// Rendering
	//===============
	// Default render mode for requests that do not name one: "requests" or "chrome"
	render string
	// Settle time after navigation in chrome mode
	waitMs int
	// Skip navigation when the live page already shows the target
	reuse bool
	// Run Chrome without a window
	headless bool
	// DevTools URL of an already running Chrome. Empty launches a new one
	chromeURL string

	//===============
	// Ranking
	//===============
	// Number of candidates returned per request
	topN int
	// Memoize rankings by (document, query)
	cacheEnabled bool
	// Maximum memoized rankings. 0 means the cache default
	cacheSize int

	//===============
	// Output
	//===============
	// Directory in which locate results and previews are stored. Empty disables persisting
	outputDir string
	// zerolog level name
	logLevel string
}

type configDTO struct {
	ListenAddr   string        `json:"listenAddr,omitempty"`
	FetchTimeout time.Duration `json:"fetchTimeout,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	MaxAttempt   int           `json:"maxAttempt,omitempty"`
	BackoffMin   time.Duration `json:"backoffMin,omitempty"`
	BackoffMax   time.Duration `json:"backoffMax,omitempty"`
	FetchRate    float64       `json:"fetchRate,omitempty"`
	Render       string        `json:"render,omitempty"`
	WaitMs       int           `json:"waitMs,omitempty"`
	// Booleans default to true or false depending on the key, so a missing
	// key must be told apart from false.
	Reuse        *bool  `json:"reuse,omitempty"`
	Headless     *bool  `json:"headless,omitempty"`
	ChromeURL    string `json:"chromeUrl,omitempty"`
	TopN         int    `json:"topN,omitempty"`
	CacheEnabled *bool  `json:"cacheEnabled,omitempty"`
	CacheSize    int    `json:"cacheSize,omitempty"`
	OutputDir    string `json:"outputDir,omitempty"`
	LogLevel     string `json:"logLevel,omitempty"`
}

// envOverlay mirrors configDTO for environment variables, named
// NLLOCATOR_<FIELD_IN_SNAKE_CASE>. Unset variables stay nil and leave the
// config untouched.
type envOverlay struct {
	ListenAddr   *string        `split_words:"true"`
	FetchTimeout *time.Duration `split_words:"true"`
	UserAgent    *string        `split_words:"true"`
	MaxAttempt   *int           `split_words:"true"`
	BackoffMin   *time.Duration `split_words:"true"`
	BackoffMax   *time.Duration `split_words:"true"`
	FetchRate    *float64       `split_words:"true"`
	Render       *string        `split_words:"true"`
	WaitMs       *int           `split_words:"true"`
	Reuse        *bool          `split_words:"true"`
	Headless     *bool          `split_words:"true"`
	ChromeURL    *string        `split_words:"true"`
	TopN         *int           `split_words:"true"`
	CacheEnabled *bool          `split_words:"true"`
	CacheSize    *int           `split_words:"true"`
	OutputDir    *string        `split_words:"true"`
	LogLevel     *string        `split_words:"true"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// Only override if non-zero value is provided
	if dto.ListenAddr != "" {
		cfg.listenAddr = dto.ListenAddr
	}
	if dto.FetchTimeout != 0 {
		cfg.fetchTimeout = dto.FetchTimeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.BackoffMin != 0 {
		cfg.backoffMin = dto.BackoffMin
	}
	if dto.BackoffMax != 0 {
		cfg.backoffMax = dto.BackoffMax
	}
	if dto.FetchRate != 0 {
		cfg.fetchRate = dto.FetchRate
	}
	if dto.Render != "" {
		cfg.render = dto.Render
	}
	if dto.WaitMs != 0 {
		cfg.waitMs = dto.WaitMs
	}
	if dto.Reuse != nil {
		cfg.reuse = *dto.Reuse
	}
	if dto.Headless != nil {
		cfg.headless = *dto.Headless
	}
	if dto.ChromeURL != "" {
		cfg.chromeURL = dto.ChromeURL
	}
	if dto.TopN != 0 {
		cfg.topN = dto.TopN
	}
	if dto.CacheEnabled != nil {
		cfg.cacheEnabled = *dto.CacheEnabled
	}
	if dto.CacheSize != 0 {
		cfg.cacheSize = dto.CacheSize
	}
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	if dto.LogLevel != "" {
		cfg.logLevel = dto.LogLevel
	}

	return cfg.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		listenAddr:   ":8000",
		fetchTimeout: 25 * time.Second,
		userAgent:    "nl-locator/1.0",
		maxAttempt:   3,
		backoffMin:   500 * time.Millisecond,
		backoffMax:   5 * time.Second,
		fetchRate:    0,
		render:       "requests",
		waitMs:       1500,
		reuse:        true,
		headless:     false,
		chromeURL:    "",
		topN:         10,
		cacheEnabled: true,
		cacheSize:    256,
		outputDir:    "",
		logLevel:     "info",
	}
	return &defaultConfig
}

// WithEnv overlays every NLLOCATOR_* variable that is set.
func (c *Config) WithEnv() (*Config, error) {
	var env envOverlay
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return c, fmt.Errorf("%w: %s", ErrEnvParsingFail, err.Error())
	}

	if env.ListenAddr != nil {
		c.listenAddr = *env.ListenAddr
	}
	if env.FetchTimeout != nil {
		c.fetchTimeout = *env.FetchTimeout
	}
	if env.UserAgent != nil {
		c.userAgent = *env.UserAgent
	}
	if env.MaxAttempt != nil {
		c.maxAttempt = *env.MaxAttempt
	}
	if env.BackoffMin != nil {
		c.backoffMin = *env.BackoffMin
	}
	if env.BackoffMax != nil {
		c.backoffMax = *env.BackoffMax
	}
	if env.FetchRate != nil {
		c.fetchRate = *env.FetchRate
	}
	if env.Render != nil {
		c.render = *env.Render
	}
	if env.WaitMs != nil {
		c.waitMs = *env.WaitMs
	}
	if env.Reuse != nil {
		c.reuse = *env.Reuse
	}
	if env.Headless != nil {
		c.headless = *env.Headless
	}
	if env.ChromeURL != nil {
		c.chromeURL = *env.ChromeURL
	}
	if env.TopN != nil {
		c.topN = *env.TopN
	}
	if env.CacheEnabled != nil {
		c.cacheEnabled = *env.CacheEnabled
	}
	if env.CacheSize != nil {
		c.cacheSize = *env.CacheSize
	}
	if env.OutputDir != nil {
		c.outputDir = *env.OutputDir
	}
	if env.LogLevel != nil {
		c.logLevel = *env.LogLevel
	}
	return c, nil
}

func (c *Config) WithListenAddr(addr string) *Config {
	c.listenAddr = addr
	return c
}

func (c *Config) WithFetchTimeout(timeout time.Duration) *Config {
	c.fetchTimeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoff(minDelay, maxDelay time.Duration) *Config {
	c.backoffMin = minDelay
	c.backoffMax = maxDelay
	return c
}

func (c *Config) WithFetchRate(perSecond float64) *Config {
	c.fetchRate = perSecond
	return c
}

func (c *Config) WithRender(render string) *Config {
	c.render = render
	return c
}

func (c *Config) WithWaitMs(waitMs int) *Config {
	c.waitMs = waitMs
	return c
}

func (c *Config) WithReuse(reuse bool) *Config {
	c.reuse = reuse
	return c
}

func (c *Config) WithHeadless(headless bool) *Config {
	c.headless = headless
	return c
}

func (c *Config) WithChromeURL(controlURL string) *Config {
	c.chromeURL = controlURL
	return c
}

func (c *Config) WithTopN(n int) *Config {
	c.topN = n
	return c
}

func (c *Config) WithCache(enabled bool, size int) *Config {
	c.cacheEnabled = enabled
	c.cacheSize = size
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if c.listenAddr == "" {
		return Config{}, fmt.Errorf("%w: listenAddr cannot be empty", ErrInvalidConfig)
	}
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1, got %d", ErrInvalidConfig, c.maxAttempt)
	}
	if c.backoffMin > c.backoffMax {
		return Config{}, fmt.Errorf("%w: backoffMin %v exceeds backoffMax %v", ErrInvalidConfig, c.backoffMin, c.backoffMax)
	}
	if c.fetchRate < 0 {
		return Config{}, fmt.Errorf("%w: fetchRate cannot be negative", ErrInvalidConfig)
	}
	if c.render != "requests" && c.render != "chrome" {
		return Config{}, fmt.Errorf("%w: render must be \"requests\" or \"chrome\", got %q", ErrInvalidConfig, c.render)
	}
	if c.waitMs < 0 {
		return Config{}, fmt.Errorf("%w: waitMs cannot be negative", ErrInvalidConfig)
	}
	if c.topN < 1 {
		return Config{}, fmt.Errorf("%w: topN must be at least 1, got %d", ErrInvalidConfig, c.topN)
	}
	if c.cacheSize < 0 {
		return Config{}, fmt.Errorf("%w: cacheSize cannot be negative", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.logLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	return *c, nil
}

func (c Config) ListenAddr() string {
	return c.listenAddr
}

func (c Config) FetchTimeout() time.Duration {
	return c.fetchTimeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffMin() time.Duration {
	return c.backoffMin
}

func (c Config) BackoffMax() time.Duration {
	return c.backoffMax
}

func (c Config) FetchRate() float64 {
	return c.fetchRate
}

func (c Config) Render() string {
	return c.render
}

func (c Config) WaitMs() int {
	return c.waitMs
}

func (c Config) Reuse() bool {
	return c.reuse
}

func (c Config) Headless() bool {
	return c.headless
}

func (c Config) ChromeURL() string {
	return c.chromeURL
}

func (c Config) TopN() int {
	return c.topN
}

func (c Config) CacheEnabled() bool {
	return c.cacheEnabled
}

func (c Config) CacheSize() int {
	return c.cacheSize
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) LogLevel() string {
	return c.logLevel
}
