package routes

import (
	"net/http"

	"minitwit/handlers"
	"minitwit/logger"
	"minitwit/monitoring"
	"minitwit/templates"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(h *handlers.Handler) http.Handler {
	router := mux.NewRouter()
	router.Use(monitoring.InstrumentHandler, h.LoadUser)

	// JSON API. Fixed paths are registered before the {username} patterns.
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", h.APIRegister).Methods("POST")
	api.HandleFunc("/login", h.APILogin).Methods("POST")
	api.HandleFunc("/logout", h.APILogout).Methods("GET")
	api.HandleFunc("/add_message", h.APIAddMessage).Methods("POST")
	api.HandleFunc("/msgs", h.APIPublicMessages).Methods("GET")
	api.HandleFunc("/msgs/{username}", h.APIUserMessages).Methods("GET")
	api.HandleFunc("/timeline", h.APITimeline).Methods("GET")
	api.Handle("/metrics", promhttp.Handler()).Methods("GET")
	api.HandleFunc("/{username}/follow", h.APIFollow).Methods("GET")
	api.HandleFunc("/{username}/unfollow", h.APIUnfollow).Methods("DELETE")

	router.PathPrefix("/static/").Handler(templates.StaticHandler()).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// HTML pages
	router.HandleFunc("/", h.Timeline).Methods("GET")
	router.HandleFunc("/public", h.PublicTimeline).Methods("GET")
	router.HandleFunc("/login", h.Login).Methods("GET", "POST")
	router.HandleFunc("/register", h.Register).Methods("GET", "POST")
	router.HandleFunc("/logout", h.Logout).Methods("GET")
	router.HandleFunc("/add_message", h.AddMessage).Methods("POST")
	router.HandleFunc("/{username}", h.UserTimeline).Methods("GET")
	router.HandleFunc("/{username}/follow", h.Follow).Methods("GET")
	router.HandleFunc("/{username}/unfollow", h.Unfollow).Methods("GET")

	return logger.Middleware(router)
}
