package server

import (
	"net/http"

	"github.com/go-chi/cors"
)

const corsMaxAge = 300

// allowAllOrigins lets any origin call the API and answers preflights.
func allowAllOrigins() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         corsMaxAge,
	})
}
