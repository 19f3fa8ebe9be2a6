package handlers

import (
	"net/http"

	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/services"
)

type FAQHandler struct {
	Service *services.FAQService
}

func NewFAQHandler(s *services.FAQService) *FAQHandler {
	return &FAQHandler{Service: s}
}

func (h *FAQHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "FAQs unavailable", http.StatusServiceUnavailable)
		return
	}
	faqs, err := h.Service.Browse(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, "Failed to load FAQs", http.StatusInternalServerError)
		return
	}
	if faqs == nil {
		faqs = []models.FAQ{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": faqs})
}

func (h *FAQHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "FAQs unavailable", http.StatusServiceUnavailable)
		return
	}
	categories, err := h.Service.Categories(r.Context())
	if err != nil {
		http.Error(w, "Failed to load FAQ categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": categories})
}
