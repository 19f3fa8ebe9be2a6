package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/query"
	"ncwcc-portal/internal/services"
	"ncwcc-portal/internal/session"
	"ncwcc-portal/internal/timeutil"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func NewInvoiceHandler(s *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: s}
}

func filterFromRequest(r *http.Request) query.Filter {
	q := r.URL.Query()
	return query.Filter{
		Status:    q.Get("status"),
		Search:    q.Get("search"),
		Ordering:  q.Get("ordering"),
		IsNDIS:    triState(q.Get("is_ndis_invoice")),
		EmailSent: triState(q.Get("email_sent")),
	}
}

// List returns the caller's invoices with filters applied upstream
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, res := h.Service.GetMyInvoices(r.Context(), filterFromRequest(r))
	if !res.Success {
		writeResult(w, res)
		return
	}
	if list == nil {
		list = []models.Invoice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": list})
}

// Summaries serves display-ready projections from the session-scoped cache,
// with filtering, search and ordering run locally
func (h *InvoiceHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := session.IDFromContext(r.Context())
	list, res := h.Service.QueryCached(r.Context(), sessionID, filterFromRequest(r))
	if !res.Success {
		writeResult(w, res)
		return
	}

	now := timeutil.Now()
	summaries := make([]models.Summary, 0, len(list))
	for _, inv := range list {
		summaries = append(summaries, inv.Summarize(now))
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": summaries})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	inv, res := h.Service.GetInvoice(r.Context(), id)
	if !res.Success {
		writeResult(w, res)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"invoice": inv,
		"summary": inv.Summarize(timeutil.Now()),
	})
}

// Download streams the invoice PDF to the browser
func (h *InvoiceHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	data, contentType, filename, res := h.Service.DownloadPDF(r.Context(), id)
	if !res.Success {
		writeResult(w, res)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *InvoiceHandler) Resend(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeResult(w, h.Service.ResendEmail(r.Context(), id))
}

func (h *InvoiceHandler) ListNDIS(w http.ResponseWriter, r *http.Request) {
	list, res := h.Service.GetNDISInvoices(r.Context(), filterFromRequest(r))
	if !res.Success {
		writeResult(w, res)
		return
	}
	if list == nil {
		list = []models.Invoice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": list})
}

func (h *InvoiceHandler) NDISCompliance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeResult(w, h.Service.CheckNDISCompliance(r.Context(), id))
}
