package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

func createRouter() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)

	router.HandleFunc("/", uploadForm).Methods("GET")
	router.HandleFunc("/healthz", healthz).Methods("GET")
	router.HandleFunc("/export", Use(export, LimitBody)).Methods("POST")

	// V1 Routes
	v1Router := router.PathPrefix("/v1").Subrouter()
	v1Router.HandleFunc("/", index).Methods("GET")
	v1Router.HandleFunc("/formats", formats).Methods("GET")
	v1Router.HandleFunc("/export", Use(export, LimitBody)).Methods("POST")

	return Use(router.ServeHTTP, RecoverAndLog)
}
