package handlers

import (
	"encoding/json"
	"net/http"

	"ncwcc-portal/internal/apiclient"
	"ncwcc-portal/internal/services"
)

// ProfileHandler proxies profile operations to the core business API with
// normalized results
type ProfileHandler struct {
	api  *apiclient.Client
	auth *services.AuthService
}

func NewProfileHandler(api *apiclient.Client, auth *services.AuthService) *ProfileHandler {
	return &ProfileHandler{api: api, auth: auth}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.api.Get(r.Context(), "/profile/"))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeResult(w, h.api.Patch(r.Context(), "/profile/", body))
}

func (h *ProfileHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.api.Post(r.Context(), "/profile/deactivate/", nil))
}

func (h *ProfileHandler) LinkSocial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider    string `json:"provider"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Provider == "" {
		http.Error(w, "provider and access_token required", http.StatusBadRequest)
		return
	}
	res := h.auth.LinkSocialAccount(r.Context(), req.Provider, req.AccessToken)
	writeAuthResult(w, res, http.StatusOK)
}

func (h *ProfileHandler) UnlinkSocial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Provider == "" {
		http.Error(w, "provider required", http.StatusBadRequest)
		return
	}
	res := h.auth.UnlinkSocialAccount(r.Context(), req.Provider)
	writeAuthResult(w, res, http.StatusOK)
}
