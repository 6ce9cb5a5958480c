package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local storefront dev
	"https://tienda-rc.vercel.app",
}

// CORS returns middleware that applies the storefront origin policy.
// Configured origins extend the defaults.
func CORS(extraOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(defaultCORSOrigins)+len(extraOrigins))
	origins = append(origins, defaultCORSOrigins...)
	origins = append(origins, extraOrigins...)

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
