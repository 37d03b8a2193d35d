package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON encodes v with the usual headers. Encoding failures after the
// status line are logged by the caller's http server, not recoverable here.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
