// Package errors writes the uniform three-field failure payload every
// endpoint returns: a false success flag, the numeric status, and a
// fixed message per failure kind.
package errors

import (
	"encoding/json"
	"net/http"
)

// Fixed messages, one per failure kind. Handlers never vary these per
// component: the same condition reads the same everywhere.
const (
	MsgBadRequest    = "bad request"
	MsgNotFound      = "resource not found"
	MsgUnprocessable = "unprocessable"
)

// Payload is the failure body shared by all endpoints.
type Payload struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// Respond writes the payload for the given status and message.
func Respond(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Payload{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondBadRequest writes the 400 payload.
func RespondBadRequest(w http.ResponseWriter) {
	Respond(w, http.StatusBadRequest, MsgBadRequest)
}

// RespondNotFound writes the 404 payload.
func RespondNotFound(w http.ResponseWriter) {
	Respond(w, http.StatusNotFound, MsgNotFound)
}

// RespondUnprocessable writes the 422 payload used for unexpected
// store failures.
func RespondUnprocessable(w http.ResponseWriter) {
	Respond(w, http.StatusUnprocessableEntity, MsgUnprocessable)
}
