// Package query implements the pure, in-memory invoice list operations:
// status and tri-state flag filters, free-text search and multi-key sort.
// Every function copies; the input slice is never mutated.
package query

import (
	"sort"
	"strings"

	"ncwcc-portal/internal/models"
)

// Filter captures the list query state for one invoice listing request
type Filter struct {
	Status    string `json:"status,omitempty"`
	Search    string `json:"search,omitempty"`
	Ordering  string `json:"ordering,omitempty"`
	IsNDIS    *bool  `json:"is_ndis_invoice,omitempty"`
	EmailSent *bool  `json:"email_sent,omitempty"`
}

// FilterByStatus keeps invoices with the given status. "all" (or empty)
// returns the list unchanged.
func FilterByStatus(list []models.Invoice, status string) []models.Invoice {
	if status == "" || status == "all" {
		return list
	}
	out := make([]models.Invoice, 0, len(list))
	for _, inv := range list {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// FilterByNDIS keeps invoices matching the tri-state NDIS flag; nil means
// no constraint
func FilterByNDIS(list []models.Invoice, only *bool) []models.Invoice {
	if only == nil {
		return list
	}
	out := make([]models.Invoice, 0, len(list))
	for _, inv := range list {
		if inv.IsNDISInvoice == *only {
			out = append(out, inv)
		}
	}
	return out
}

// FilterByEmailSent keeps invoices matching the tri-state email-sent flag
func FilterByEmailSent(list []models.Invoice, only *bool) []models.Invoice {
	if only == nil {
		return list
	}
	out := make([]models.Invoice, 0, len(list))
	for _, inv := range list {
		if inv.EmailSent == *only {
			out = append(out, inv)
		}
	}
	return out
}

// Search keeps invoices whose invoice number, client name fields or NDIS
// participant name contain the term, case-insensitively. An empty term
// matches everything.
func Search(list []models.Invoice, term string) []models.Invoice {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	out := make([]models.Invoice, 0, len(list))
	for _, inv := range list {
		if matchesTerm(inv, term) {
			out = append(out, inv)
		}
	}
	return out
}

func matchesTerm(inv models.Invoice, term string) bool {
	fields := []string{
		inv.InvoiceNumber,
		inv.Client.FullName,
		inv.Client.FirstName,
		inv.Client.LastName,
		inv.ParticipantName,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Sort orders a copy of the list by the given key. A "-" prefix reverses
// the direction. Date-named keys compare as dates, total_amount compares
// numerically, everything else compares as ordinal strings. The sort is
// stable; ties keep their relative order.
func Sort(list []models.Invoice, key string) []models.Invoice {
	out := make([]models.Invoice, len(list))
	copy(out, list)
	if key == "" {
		return out
	}

	desc := strings.HasPrefix(key, "-")
	field := strings.TrimPrefix(key, "-")

	less := lessFunc(field)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field string) func(a, b models.Invoice) bool {
	if strings.Contains(field, "date") {
		get := dateField(field)
		if get == nil {
			return nil
		}
		return func(a, b models.Invoice) bool {
			return get(a).Before(get(b).Time)
		}
	}
	if field == "total_amount" {
		return func(a, b models.Invoice) bool {
			return a.TotalAmount < b.TotalAmount
		}
	}
	get := stringField(field)
	if get == nil {
		return nil
	}
	return func(a, b models.Invoice) bool {
		return get(a) < get(b)
	}
}

func dateField(field string) func(models.Invoice) models.Date {
	switch field {
	case "due_date":
		return func(inv models.Invoice) models.Date { return inv.DueDate }
	case "invoice_date":
		return func(inv models.Invoice) models.Date { return inv.InvoiceDate }
	case "service_start_date":
		return func(inv models.Invoice) models.Date { return inv.ServiceStartDate }
	case "service_end_date":
		return func(inv models.Invoice) models.Date { return inv.ServiceEndDate }
	}
	return nil
}

func stringField(field string) func(models.Invoice) string {
	switch field {
	case "invoice_number":
		return func(inv models.Invoice) string { return inv.InvoiceNumber }
	case "status":
		return func(inv models.Invoice) string { return inv.Status }
	case "participant_name":
		return func(inv models.Invoice) string { return inv.ParticipantName }
	case "ndis_number":
		return func(inv models.Invoice) string { return inv.NDISNumber }
	case "client_name":
		return func(inv models.Invoice) string { return inv.ClientName() }
	}
	return nil
}

// Apply runs the full filter pipeline over a list: status, tri-state flags,
// search, then ordering
func Apply(list []models.Invoice, f Filter) []models.Invoice {
	out := FilterByStatus(list, f.Status)
	out = FilterByNDIS(out, f.IsNDIS)
	out = FilterByEmailSent(out, f.EmailSent)
	out = Search(out, f.Search)
	return Sort(out, f.Ordering)
}
