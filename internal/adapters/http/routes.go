package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter mounts the search endpoint, the Swagger documentation and the
// Prometheus metrics.
func NewRouter(search *SearchHandler) *http.ServeMux {
	router := http.NewServeMux()
	router.HandleFunc("/search", search.Search)
	router.Handle("/metrics", promhttp.Handler())
	// Serve Swagger documentation
	router.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	return router
}
