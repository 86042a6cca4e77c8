package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "mergingtonactivities/docs"
	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/delivery/http/middleware"
	"mergingtonactivities/web"
)

// IndexPath is where GET / redirects.
const IndexPath = "/static/index.html"

// NewRouter initializes the HTTP router with all application routes
func NewRouter(activityController *controllers.ActivityController) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /activities", activityController.ListActivities)
	mux.HandleFunc("GET /activities/{name}", activityController.GetActivity)
	mux.HandleFunc("POST /activities/{name}/signup", activityController.Signup)
	mux.HandleFunc("POST /activities/{name}/unregister", activityController.Unregister)

	// Front-end
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
	})
	mux.Handle("GET "+IndexPath, web.IndexHandler())
	mux.Handle("GET /static/", http.StripPrefix("/static", web.Handler()))

	// Ops
	mux.HandleFunc("GET /healthz", controllers.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// WithMiddleware wraps the router with CORS, request IDs, request logging and
// metrics. Metrics sits closest to the mux so it sees the matched pattern.
func WithMiddleware(mux *http.ServeMux, logger *slog.Logger, allowedOrigins []string) http.Handler {
	var h http.Handler = middleware.Metrics(mux)
	h = middleware.LoggingMiddleware(logger, h)
	h = middleware.RequestID(h)
	return middleware.CORS(allowedOrigins, h)
}
