package handlers

import (
	"encoding/json"
	"net/http"

	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/services"
)

type ContactHandler struct {
	Service *services.ContactService
}

func NewContactHandler(s *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: s}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "Contact form unavailable", http.StatusServiceUnavailable)
		return
	}

	var sub models.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fieldErrors, err := h.Service.Submit(r.Context(), &sub)
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Please correct the highlighted fields",
			"errors":  fieldErrors,
		})
		return
	}
	if err != nil {
		http.Error(w, "Failed to submit contact request", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": sub.ID})
}
