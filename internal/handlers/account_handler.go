package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"ncwcc-portal/internal/apiclient"
)

// AccountHandler proxies addresses and the dashboard to the core business
// API with normalized results
type AccountHandler struct {
	api *apiclient.Client
}

func NewAccountHandler(api *apiclient.Client) *AccountHandler {
	return &AccountHandler{api: api}
}

func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.api.Get(r.Context(), "/addresses/"))
}

func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeResult(w, h.api.Post(r.Context(), "/addresses/", body))
}

func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeResult(w, h.api.Put(r.Context(), "/addresses/"+id+"/", body))
}

func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeResult(w, h.api.Delete(r.Context(), "/addresses/"+id+"/"))
}

func (h *AccountHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.api.Get(r.Context(), "/dashboard/"))
}
