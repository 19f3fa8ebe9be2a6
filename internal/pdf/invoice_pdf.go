// Package pdf renders a local invoice PDF when the upstream API has no
// generated file for a non-draft invoice. Amounts are printed exactly as
// delivered; nothing is recomputed.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/timeutil"
)

type Renderer struct {
	businessName string
}

func NewRenderer(businessName string) *Renderer {
	if businessName == "" {
		businessName = "NCWCC Cleaning Services"
	}
	return &Renderer{businessName: businessName}
}

func (r *Renderer) Render(inv models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, r.businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(190, 8, fmt.Sprintf("Tax Invoice %s", inv.InvoiceNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Client Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Invoice Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Client: %s", inv.ClientName()), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", inv.Status), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice date: %s", models.FormatDate(inv.InvoiceDate)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Due date: %s", models.FormatDate(inv.DueDate)), "RB", 1, "L", false, 0, "")
	if ndis := inv.NDISInfo(); ndis != nil {
		pdf.CellFormat(95, 7, fmt.Sprintf("Participant: %s", ndis.ParticipantName), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("NDIS number: %s", ndis.NDISNumber), "RB", 1, "L", false, 0, "")
		pdf.CellFormat(190, 7, fmt.Sprintf("Service period: %s", ndis.ServicePeriod), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Line Items Table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Services", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "GST", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(80, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%g", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, models.FormatAmount(item.UnitPrice), "1", 0, "R", false, 0, "")
		gst := "-"
		if item.Taxable {
			gst = models.FormatAmount(item.GSTAmount)
		}
		pdf.CellFormat(25, 7, gst, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, models.FormatAmount(item.TotalPrice), "1", 1, "R", false, 0, "")
	}

	// Total row
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(155, 8, "Total (AUD)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, models.FormatAmount(inv.TotalAmount), "1", 1, "R", true, 0, "")

	if inv.Notes != "" {
		pdf.Ln(5)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(190, 6, fmt.Sprintf("Notes: %s", inv.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
