package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/exlskills/storyboardutil/config"
	"github.com/gorilla/handlers"
)

var Log = config.Cfg().GetLogger()
var CorsHandler = handlers.CORS(handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}), handlers.AllowedHeaders([]string{"x-locale", "content-type", "access-control-request-headers", "access-control-request-method", "x-csrftoken"}), handlers.AllowedOrigins([]string{"*"}), handlers.ExposedHeaders([]string{"Content-Disposition"}))

// Handler is the full middleware-wrapped application handler.
func Handler() http.Handler {
	return CorsHandler(handlers.CombinedLoggingHandler(os.Stdout, createRouter()))
}

func Serve() error {
	addr := fmt.Sprintf("%s:%s", config.Cfg().ServerAddr, config.Cfg().ServerPort)
	Log.Info("Starting storyboard HTTP server on ", addr)
	err := http.ListenAndServe(addr, Handler())
	Log.Error(err)
	Log.Info("Stopped storyboard HTTP server")
	return err
}
