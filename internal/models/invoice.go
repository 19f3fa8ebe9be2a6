package models

import (
	"encoding/json"
	"fmt"
	"time"

	"ncwcc-portal/internal/timeutil"
)

// Invoice statuses (server-authoritative; the portal only reads them)
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// Date is a calendar date as delivered by the API ("2006-01-02" or RFC 3339)
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, timeutil.Sydney); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// InvoiceClient is the client reference embedded in an invoice
type InvoiceClient struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

// LineItem is a single invoice line. Totals are trusted as delivered and
// never recomputed by the portal.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Taxable     bool    `json:"taxable"`
	GSTAmount   float64 `json:"gst_amount"`
	TotalPrice  float64 `json:"total_price"`
}

// Invoice represents an invoice as delivered by the core business API
type Invoice struct {
	ID               string        `json:"id"`
	InvoiceNumber    string        `json:"invoice_number"`
	Status           string        `json:"status"`
	TotalAmount      float64       `json:"total_amount"`
	InvoiceDate      Date          `json:"invoice_date"`
	DueDate          Date          `json:"due_date"`
	Client           InvoiceClient `json:"client"`
	IsNDISInvoice    bool          `json:"is_ndis_invoice"`
	ParticipantName  string        `json:"participant_name,omitempty"`
	NDISNumber       string        `json:"ndis_number,omitempty"`
	ServiceStartDate Date          `json:"service_start_date,omitempty"`
	ServiceEndDate   Date          `json:"service_end_date,omitempty"`
	EmailSent        bool          `json:"email_sent"`
	PDFFile          string        `json:"pdf_file,omitempty"`
	Items            []LineItem    `json:"items,omitempty"`
	Notes            string        `json:"notes,omitempty"`
}

// ClientName returns the best available display name for the invoice client
func (inv Invoice) ClientName() string {
	if inv.Client.FullName != "" {
		return inv.Client.FullName
	}
	name := inv.Client.FirstName
	if inv.Client.LastName != "" {
		if name != "" {
			name += " "
		}
		name += inv.Client.LastName
	}
	return name
}
