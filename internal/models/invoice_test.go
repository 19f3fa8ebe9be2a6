package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncwcc-portal/internal/timeutil"
)

func date(t *testing.T, s string) Date {
	t.Helper()
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"`+s+`"`), &d))
	return d
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatAmount(1234.5))
	assert.Equal(t, "$0.00", FormatAmount(0))
	assert.Equal(t, "$99.90", FormatAmount(99.9))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 Mar 2025", FormatDate(date(t, "2025-03-15")))
	assert.Equal(t, "", FormatDate(Date{}))
}

func TestDateUnmarshal(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`"2025-07-01"`), &d))
	assert.Equal(t, 2025, d.Year())

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2025, 3, 20, 10, 0, 0, 0, timeutil.Sydney)

	inv := Invoice{Status: StatusSent, DueDate: date(t, "2025-03-15")}
	assert.Equal(t, 5, inv.DaysOverdue(now))
	assert.True(t, inv.IsOverdue(now))

	// On the due date itself: zero, not negative, not overdue
	onDue := Invoice{Status: StatusSent, DueDate: date(t, "2025-03-20")}
	assert.Equal(t, 0, onDue.DaysOverdue(now))
	assert.False(t, onDue.IsOverdue(now))

	future := Invoice{Status: StatusSent, DueDate: date(t, "2025-04-01")}
	assert.Equal(t, 0, future.DaysOverdue(now))
	assert.False(t, future.IsOverdue(now))

	noDue := Invoice{Status: StatusSent}
	assert.Equal(t, 0, noDue.DaysOverdue(now))
}

func TestCanDownloadPDF(t *testing.T) {
	assert.False(t, Invoice{Status: StatusDraft}.CanDownloadPDF())
	assert.True(t, Invoice{Status: StatusDraft, PDFFile: "inv.pdf"}.CanDownloadPDF())
	// Non-draft is downloadable regardless of pdf_file
	assert.True(t, Invoice{Status: StatusSent}.CanDownloadPDF())
}

func TestCanResendEmail(t *testing.T) {
	withEmail := InvoiceClient{Email: "c@example.com"}
	assert.True(t, Invoice{Status: StatusSent, Client: withEmail}.CanResendEmail())
	assert.False(t, Invoice{Status: StatusPaid, Client: withEmail}.CanResendEmail())
	assert.False(t, Invoice{Status: StatusSent}.CanResendEmail())
}

func TestNDISInfo(t *testing.T) {
	plain := Invoice{ParticipantName: "Robbie Chen"}
	assert.Nil(t, plain.NDISInfo())

	ndis := Invoice{
		IsNDISInvoice:    true,
		ParticipantName:  "Robbie Chen",
		NDISNumber:       "430111222",
		ServiceStartDate: date(t, "2025-02-03"),
		ServiceEndDate:   date(t, "2025-02-07"),
	}
	info := ndis.NDISInfo()
	require.NotNil(t, info)
	assert.Equal(t, "Robbie Chen", info.ParticipantName)
	assert.Equal(t, "3 Feb 2025 - 7 Feb 2025", info.ServicePeriod)
}

func TestServicePeriod(t *testing.T) {
	single := Invoice{
		ServiceStartDate: date(t, "2025-02-03"),
		ServiceEndDate:   date(t, "2025-02-03"),
	}
	assert.Equal(t, "3 Feb 2025", single.ServicePeriod())

	openEnded := Invoice{ServiceStartDate: date(t, "2025-02-03")}
	assert.Equal(t, "3 Feb 2025", openEnded.ServicePeriod())

	assert.Equal(t, "", Invoice{}.ServicePeriod())
}

func TestClientName(t *testing.T) {
	assert.Equal(t, "Bob Nguyen", Invoice{Client: InvoiceClient{FullName: "Bob Nguyen"}}.ClientName())
	assert.Equal(t, "Bob Nguyen", Invoice{Client: InvoiceClient{FirstName: "Bob", LastName: "Nguyen"}}.ClientName())
	assert.Equal(t, "Bob", Invoice{Client: InvoiceClient{FirstName: "Bob"}}.ClientName())
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 20, 10, 0, 0, 0, timeutil.Sydney)
	inv := Invoice{
		ID:            "9",
		InvoiceNumber: "INV-0009",
		Status:        StatusSent,
		TotalAmount:   1234.5,
		InvoiceDate:   date(t, "2025-02-20"),
		DueDate:       date(t, "2025-03-15"),
		Client:        InvoiceClient{FullName: "Bob Nguyen", Email: "bob@example.com"},
	}

	s := inv.Summarize(now)
	assert.Equal(t, "$1,234.50", s.FormattedAmount)
	assert.Equal(t, "20 Feb 2025", s.FormattedDate)
	assert.True(t, s.IsOverdue)
	assert.Equal(t, 5, s.DaysOverdue)
	assert.True(t, s.CanDownload)
	assert.True(t, s.CanResend)
	assert.Nil(t, s.NDIS)
}
