package models

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"ncwcc-portal/internal/timeutil"
)

var auPrinter = message.NewPrinter(language.MustParse("en-AU"))

// FormatAmount renders an amount in Australian dollars with two decimals
func FormatAmount(amount float64) string {
	return auPrinter.Sprintf("$%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatDate renders a date the way the portal displays it, e.g. "15 Mar 2025"
func FormatDate(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.In(timeutil.Sydney).Format("2 Jan 2006")
}

// dateOnly pins a timestamp to its calendar date so day arithmetic is not
// skewed by DST transitions
func dateOnly(t time.Time) time.Time {
	y, m, d := t.In(timeutil.Sydney).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysOverdue returns whole days past the due date, zero on the due date
// itself and never negative
func (inv Invoice) DaysOverdue(now time.Time) int {
	if inv.DueDate.IsZero() {
		return 0
	}
	days := int(dateOnly(now).Sub(dateOnly(inv.DueDate.Time)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether the due date has passed
func (inv Invoice) IsOverdue(now time.Time) bool {
	return inv.DaysOverdue(now) > 0
}

// CanDownloadPDF: download is available unless the invoice is still a draft
// with no generated file
func (inv Invoice) CanDownloadPDF() bool {
	return inv.PDFFile != "" || inv.Status != StatusDraft
}

// CanResendEmail: resend is only offered for sent invoices with a client email
func (inv Invoice) CanResendEmail() bool {
	return inv.Status == StatusSent && inv.Client.Email != ""
}

// ParticipantInfo is the NDIS projection of an invoice
type ParticipantInfo struct {
	ParticipantName string `json:"participant_name"`
	NDISNumber      string `json:"ndis_number"`
	ServicePeriod   string `json:"service_period"`
}

// NDISInfo returns participant details, or nil for non-NDIS invoices
func (inv Invoice) NDISInfo() *ParticipantInfo {
	if !inv.IsNDISInvoice {
		return nil
	}
	return &ParticipantInfo{
		ParticipantName: inv.ParticipantName,
		NDISNumber:      inv.NDISNumber,
		ServicePeriod:   inv.ServicePeriod(),
	}
}

// ServicePeriod renders the service dates as a single date or a range
func (inv Invoice) ServicePeriod() string {
	if inv.ServiceStartDate.IsZero() {
		return ""
	}
	start := FormatDate(inv.ServiceStartDate)
	if inv.ServiceEndDate.IsZero() || inv.ServiceEndDate.Equal(inv.ServiceStartDate.Time) {
		return start
	}
	return start + " - " + FormatDate(inv.ServiceEndDate)
}

// Summary aggregates the derived projections for display
type Summary struct {
	ID              string           `json:"id"`
	InvoiceNumber   string           `json:"invoice_number"`
	Status          string           `json:"status"`
	ClientName      string           `json:"client_name"`
	FormattedAmount string           `json:"formatted_amount"`
	FormattedDate   string           `json:"formatted_date"`
	FormattedDue    string           `json:"formatted_due_date"`
	IsOverdue       bool             `json:"is_overdue"`
	DaysOverdue     int              `json:"days_overdue"`
	CanDownload     bool             `json:"can_download"`
	CanResend       bool             `json:"can_resend"`
	NDIS            *ParticipantInfo `json:"ndis,omitempty"`
}

// Summarize builds the display summary for an invoice
func (inv Invoice) Summarize(now time.Time) Summary {
	return Summary{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		Status:          inv.Status,
		ClientName:      inv.ClientName(),
		FormattedAmount: FormatAmount(inv.TotalAmount),
		FormattedDate:   FormatDate(inv.InvoiceDate),
		FormattedDue:    FormatDate(inv.DueDate),
		IsOverdue:       inv.IsOverdue(now),
		DaysOverdue:     inv.DaysOverdue(now),
		CanDownload:     inv.CanDownloadPDF(),
		CanResend:       inv.CanResendEmail(),
		NDIS:            inv.NDISInfo(),
	}
}
