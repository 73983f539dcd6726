package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all HTTP routes. Mutating visit routes sit behind the
// auth middleware; bulk admin routes additionally require the admin role.
func NewRouter(auth *AuthMiddleware, authHandler *AuthHandler, visitHandler *VisitHandler, adminHandler *AdminHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Handler)
	authed.HandleFunc("/visits/{id:[0-9]+}", visitHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/visits/{id:[0-9]+}/window", visitHandler.GetWindow).Methods(http.MethodGet)
	authed.HandleFunc("/teams/{teamID:[0-9]+}/visits", visitHandler.ListByTeam).Methods(http.MethodGet)
	authed.HandleFunc("/visits/{id:[0-9]+}/media", visitHandler.UploadMedia).Methods(http.MethodPost)
	authed.HandleFunc("/visits/{id:[0-9]+}/media/{mediaID}", visitHandler.DeleteMedia).Methods(http.MethodDelete)
	authed.HandleFunc("/visits/{id:[0-9]+}/report", visitHandler.UpdateReport).Methods(http.MethodPut)
	authed.HandleFunc("/visits/{id:[0-9]+}/report/submit", visitHandler.SubmitReport).Methods(http.MethodPost)

	admin := authed.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/visits", visitHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/visits/{id:[0-9]+}/cancel", visitHandler.Cancel).Methods(http.MethodPost)
	admin.HandleFunc("/admin/bulk", adminHandler.ExecuteBulk).Methods(http.MethodPost)

	return r
}
