package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ncwcc-portal/internal/apiclient"
	"ncwcc-portal/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeResult relays a normalized upstream result, keeping its status
func writeResult(w http.ResponseWriter, res *apiclient.Result) {
	status := res.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if res.Success {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if len(res.Data) > 0 {
			w.Write(res.Data)
		} else {
			w.Write([]byte(`{"success": true}`))
		}
		return
	}
	writeJSON(w, status, res)
}

func writeAuthResult(w http.ResponseWriter, res services.AuthResult, okStatus int) {
	status := okStatus
	if !res.Success {
		status = res.Status
		if status == 0 || status < http.StatusBadRequest {
			status = http.StatusBadRequest
		}
	}
	writeJSON(w, status, res)
}

// triState parses "true"/"false" into a tri-state flag; anything else is
// no constraint
func triState(v string) *bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
