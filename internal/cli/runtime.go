package cmd

import (
	"io"

	"github.com/rohmanhakim/nl-locator/internal/cache"
	"github.com/rohmanhakim/nl-locator/internal/config"
	"github.com/rohmanhakim/nl-locator/internal/fetcher"
	"github.com/rohmanhakim/nl-locator/internal/finder"
	"github.com/rohmanhakim/nl-locator/internal/highlight"
	"github.com/rohmanhakim/nl-locator/internal/locate"
	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/internal/sanitizer"
	"github.com/rohmanhakim/nl-locator/internal/session"
	"github.com/rohmanhakim/nl-locator/internal/storage"
	"github.com/rs/zerolog"
)

// runtime is the object graph shared by locate and serve.
type runtime struct {
	logger  zerolog.Logger
	fetcher *fetcher.HtmlFetcher
	session *session.Session
	store   *storage.LocalSink
	service *locate.Service
}

func newLogger(level string, out io.Writer) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}).
		Level(parsed).
		With().
		Timestamp().
		Logger()
}

func newRuntime(cfg config.Config, logger zerolog.Logger) *runtime {
	recorder := metadata.NewRecorder("main", logger)

	htmlFetcher := fetcher.NewHtmlFetcher(&recorder, fetcher.ClientParam{
		Timeout:       cfg.FetchTimeout(),
		MaxAttempt:    cfg.MaxAttempt(),
		BackoffMin:    cfg.BackoffMin(),
		BackoffMax:    cfg.BackoffMax(),
		RatePerSecond: cfg.FetchRate(),
	})

	// Chrome is launched on the first chrome-mode request only.
	browser := session.NewSession(
		&recorder,
		session.RodLauncher(session.RodParam{
			RemoteURL: cfg.ChromeURL(),
			Headless:  cfg.Headless(),
		}),
		session.DefaultSessionParam(),
	)

	var results cache.Cache[finder.Result]
	if cfg.CacheEnabled() {
		results = cache.NewMemoryCache[finder.Result](cfg.CacheSize())
	}

	store := storage.NewLocalSink(&recorder)

	service := locate.NewService(
		&recorder,
		&htmlFetcher,
		browser,
		highlight.NewHighlighter(sanitizer.NewHTMLSanitizer()),
		results,
		locate.ServiceParam{
			UserAgent:     cfg.UserAgent(),
			TopN:          cfg.TopN(),
			DefaultRender: locate.RenderMode(cfg.Render()),
			DefaultWaitMs: cfg.WaitMs(),
			DisableReuse:  !cfg.Reuse(),
		},
	)

	return &runtime{
		logger:  logger,
		fetcher: &htmlFetcher,
		session: browser,
		store:   &store,
		service: service,
	}
}

func (r *runtime) Close() {
	if err := r.session.Close(); err != nil {
		r.logger.Warn().Err(err).Msg("closing browser session")
	}
}
