package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/taghub/taghub/api/middleware"
	"github.com/taghub/taghub/api/resources"
	"github.com/taghub/taghub/internal/hubservice"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.IngestKeyMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, ingestKey string) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewIngestKeyMiddleware(ingestKey),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.HealthCheck != nil {
			r.resources.HealthCheck(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// Ingestion, guarded by the optional API key
	ingest := api.PathPrefix("/readings").Subrouter()
	ingest.Use(r.auth.Authenticate)
	ingest.HandleFunc("", r.resources.Readings.IngestReadings).Methods(http.MethodPost)

	// Read-only query surface
	api.HandleFunc("/readings", r.resources.Readings.QueryReadings).Methods(http.MethodGet)
	api.HandleFunc("/aggregates", r.resources.Aggregates.ListAggregates).Methods(http.MethodGet)

	// Tags
	tags := api.PathPrefix("/tags").Subrouter()
	tags.HandleFunc("", r.resources.Tags.ListTags).Methods(http.MethodGet)
	tags.HandleFunc("", r.resources.Tags.RegisterTag).Methods(http.MethodPost)
	tags.HandleFunc("/{id}", r.resources.Tags.RenameTag).Methods(http.MethodPut)
	tags.HandleFunc("/{id}/status", r.resources.Tags.GetTagStatus).Methods(http.MethodGet)
}

// SetHealthCheck installs the health check handler
func (r *Router) SetHealthCheck(h func(w http.ResponseWriter, req *http.Request)) {
	r.resources.SetHealthCheck(h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handlers.RecoveryHandler()(
		handlers.CombinedLoggingHandler(os.Stdout, r.router),
	).ServeHTTP(w, req)
}
