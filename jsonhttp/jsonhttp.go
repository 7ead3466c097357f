// Package jsonhttp writes the service's JSON envelope: {"success", "message", "detail", "data"}.
package jsonhttp

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func JSONSuccess(w http.ResponseWriter, data interface{}, message string) {
	write(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func JSONError(w http.ResponseWriter, status int, message, detail string) {
	if message == "" {
		message = http.StatusText(status)
	}
	write(w, status, Response{Message: message, Detail: detail})
}

func JSONBadRequestError(w http.ResponseWriter, message, detail string) {
	JSONError(w, http.StatusBadRequest, message, detail)
}

func JSONNotFoundError(w http.ResponseWriter, message, detail string) {
	JSONError(w, http.StatusNotFound, message, detail)
}

func JSONRequestTooLargeError(w http.ResponseWriter, message, detail string) {
	JSONError(w, http.StatusRequestEntityTooLarge, message, detail)
}

func JSONInternalError(w http.ResponseWriter, message, detail string) {
	JSONError(w, http.StatusInternalServerError, message, detail)
}
