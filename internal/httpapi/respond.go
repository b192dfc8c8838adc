package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/klimchuk/roadtripgame/internal/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeClientError(w http.ResponseWriter, err *apierror.ClientError) {
	writeJSON(w, err.Status(), errorEnvelope{Code: string(err.Code), Message: err.Message})
}

// requireMethod enforces that r.Method is one of allowed, writing a 405
// with an Allow header otherwise. Returns whether the request may
// proceed.
func requireMethod(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	for _, m := range allowed {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeClientError(w, apierror.InvalidMethod(r.Method))
	return false
}
