package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rohmanhakim/nl-locator/internal/locate"
	"github.com/rohmanhakim/nl-locator/internal/storage"
	"github.com/rs/zerolog"
)

/*
Responsibilities
- Expose locate over HTTP as JSON
- Serve the bundled single-page UI
- Map request errors to 400 and collaborator failures to 502
- Optionally persist each successful response

The server holds no locate state of its own. Every request is handed to
the Locator as is.
*/

//go:embed ui/index.html
var uiFS embed.FS

type Server struct {
	locator Locator
	store   storage.Sink
	logger  zerolog.Logger
	param   ServerParam
	router  *chi.Mux
}

// NewServer builds the router. store may be nil.
func NewServer(
	locator Locator,
	store storage.Sink,
	logger zerolog.Logger,
	param ServerParam,
) *Server {
	s := &Server{
		locator: locator,
		store:   store,
		logger:  logger,
		param:   param,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(allowAllOrigins())

	r.Get("/", s.handleIndex)
	r.Get("/api/health", s.handleHealth)
	r.Post("/api/locate", s.handleLocate)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.param.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.param.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.param.Addr).Msg("server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.param.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := uiFS.ReadFile("ui/index.html")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "index.html not bundled"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{OK: true})
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var req locate.Request
	body := http.MaxBytesReader(w, r.Body, s.param.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return
	}

	resp, err := s.locator.Locate(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		if locate.IsInputError(err) {
			status = http.StatusBadRequest
		}
		s.logger.Warn().
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Err(err).
			Msg("locate failed")
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	s.persist(req, resp)
	writeJSON(w, http.StatusOK, resp)
}

// persist stores the response when an output directory is configured.
// Write failures are already recorded by the sink and never fail the
// request.
func (s *Server) persist(req locate.Request, resp locate.Response) {
	if s.store == nil || s.param.OutputDir == "" {
		return
	}
	preview := resp.PreviewHTML
	if preview == locate.LivePreviewNote {
		preview = ""
	}
	_, _ = s.store.Write(s.param.OutputDir, storage.Record{
		SourceURL: req.URL,
		Query:     req.Query,
		Payload:   resp,
		Preview:   preview,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
