package http

import (
	"net/http"

	"portfolio-views/internal/portfolios"
	"portfolio-views/internal/shared/loggers"
	"portfolio-views/internal/shared/metrics"
	"portfolio-views/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(portfolioService portfolios.PortfolioService, uploadStore stores.UploadStore, limits UploadLimits, corsPolicy CORSPolicy, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, corsPolicy, httpLogger)

	// Routes
	router.Route("/portfolios", func(r chi.Router) {
		r.Post("/", errorHandlingAdapter(NewCreatePortfolioHandler(portfolioService, limits)))
		r.Get("/check/{username}", errorHandlingAdapter(NewCheckUsernameHandler(portfolioService)))
		r.Get("/{username}", errorHandlingAdapter(NewViewPortfolioHandler(portfolioService)))
		r.Patch("/{username}", errorHandlingAdapter(NewUpdatePortfolioHandler(portfolioService, limits)))
	})
	router.Get("/uploads/*", errorHandlingAdapter(NewServeUploadHandler(uploadStore)))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
