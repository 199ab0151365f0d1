package handler

import (
	"github.com/Dan9191/credit-dashboard/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter registers every dashboard route
func NewRouter(h *Handler, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log), middleware.Recoverer(log))

	r.HandleFunc("/healthz", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/options", h.Options).Methods("GET")
	api.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	api.HandleFunc("/charts/{name:[a-z-]+}.{format:png|svg}", h.ChartImage).Methods("GET")
	api.HandleFunc("/charts/{name:[a-z-]+}", h.Chart).Methods("GET")
	return r
}
