package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ncwcc-portal/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func sampleInvoices() []models.Invoice {
	return []models.Invoice{
		{
			ID:            "1",
			InvoiceNumber: "INV-0001",
			Status:        models.StatusSent,
			TotalAmount:   150,
			Client:        models.InvoiceClient{FirstName: "Bob", LastName: "Nguyen", FullName: "Bob Nguyen"},
			EmailSent:     true,
		},
		{
			ID:            "2",
			InvoiceNumber: "INV-0002",
			Status:        models.StatusPaid,
			TotalAmount:   99.5,
			Client:        models.InvoiceClient{FirstName: "Alice", LastName: "Smith", FullName: "Alice Smith"},
		},
		{
			ID:              "3",
			InvoiceNumber:   "INV-0003",
			Status:          models.StatusSent,
			TotalAmount:     420,
			IsNDISInvoice:   true,
			ParticipantName: "Robbie Chen",
			Client:          models.InvoiceClient{FirstName: "Carer", LastName: "Family"},
			EmailSent:       true,
		},
		{
			ID:            "4",
			InvoiceNumber: "INV-0004",
			Status:        models.StatusDraft,
			TotalAmount:   150,
			Client:        models.InvoiceClient{FullName: "Dana Wu"},
		},
	}
}

func TestFilterByStatus(t *testing.T) {
	list := sampleInvoices()

	sent := FilterByStatus(list, models.StatusSent)
	require.Len(t, sent, 2)
	for _, inv := range sent {
		assert.Equal(t, models.StatusSent, inv.Status)
	}
	// Relative order preserved
	assert.Equal(t, "1", sent[0].ID)
	assert.Equal(t, "3", sent[1].ID)

	assert.Empty(t, FilterByStatus(list, models.StatusCancelled))
}

func TestFilterByStatusAllIsIdentity(t *testing.T) {
	list := sampleInvoices()
	assert.Equal(t, list, FilterByStatus(list, "all"))
	assert.Equal(t, list, FilterByStatus(list, ""))
}

func TestFilterByNDISTriState(t *testing.T) {
	list := sampleInvoices()

	assert.Equal(t, list, FilterByNDIS(list, nil))

	only := FilterByNDIS(list, boolPtr(true))
	require.Len(t, only, 1)
	assert.Equal(t, "3", only[0].ID)

	none := FilterByNDIS(list, boolPtr(false))
	assert.Len(t, none, 3)
}

func TestFilterByEmailSentTriState(t *testing.T) {
	list := sampleInvoices()

	assert.Equal(t, list, FilterByEmailSent(list, nil))
	assert.Len(t, FilterByEmailSent(list, boolPtr(true)), 2)
	assert.Len(t, FilterByEmailSent(list, boolPtr(false)), 2)
}

func TestSearchMatchesKnownFields(t *testing.T) {
	list := sampleInvoices()

	// Case-insensitive invoice number match
	byNumber := Search(list, "inv-0002")
	require.Len(t, byNumber, 1)
	assert.Equal(t, "2", byNumber[0].ID)

	// Client first name
	byName := Search(list, "bob")
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	// Participant name matches even when the client name does not
	byParticipant := Search(list, "robbie")
	require.Len(t, byParticipant, 1)
	assert.Equal(t, "3", byParticipant[0].ID)

	// Non-matching records are excluded
	assert.Empty(t, Search(list, "zzz-no-match"))

	// Empty term matches everything
	assert.Equal(t, list, Search(list, "  "))
}

func TestSortByAmountRoundTrip(t *testing.T) {
	list := sampleInvoices()

	desc := Sort(list, "-total_amount")
	require.Len(t, desc, len(list))
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].TotalAmount, desc[i].TotalAmount)
	}

	asc := Sort(desc, "total_amount")
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].TotalAmount, asc[i].TotalAmount)
	}
}

func TestSortStableOnTies(t *testing.T) {
	list := sampleInvoices()
	asc := Sort(list, "total_amount")

	// IDs 1 and 4 share an amount; input order must survive
	var tied []string
	for _, inv := range asc {
		if inv.TotalAmount == 150 {
			tied = append(tied, inv.ID)
		}
	}
	assert.Equal(t, []string{"1", "4"}, tied)
}

func TestSortByDateField(t *testing.T) {
	list := sampleInvoices()
	list[0].DueDate = mustDate(t, "2025-03-10")
	list[1].DueDate = mustDate(t, "2025-01-15")
	list[2].DueDate = mustDate(t, "2025-02-01")
	list[3].DueDate = mustDate(t, "2025-04-30")

	sorted := Sort(list, "due_date")
	assert.Equal(t, []string{"2", "3", "1", "4"}, ids(sorted))

	reversed := Sort(list, "-due_date")
	assert.Equal(t, []string{"4", "1", "3", "2"}, ids(reversed))
}

func TestSortByStringFieldOrdinal(t *testing.T) {
	list := sampleInvoices()
	sorted := Sort(list, "-invoice_number")
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(sorted))
}

func TestSortUnknownKeyLeavesOrder(t *testing.T) {
	list := sampleInvoices()
	assert.Equal(t, ids(list), ids(Sort(list, "mystery_field")))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	list := sampleInvoices()
	before := ids(list)
	Sort(list, "-total_amount")
	assert.Equal(t, before, ids(list))
}

func TestApplyPipeline(t *testing.T) {
	list := sampleInvoices()
	out := Apply(list, Filter{
		Status:    models.StatusSent,
		EmailSent: boolPtr(true),
		Ordering:  "-total_amount",
	})
	assert.Equal(t, []string{"3", "1"}, ids(out))
}

func ids(list []models.Invoice) []string {
	out := make([]string, len(list))
	for i, inv := range list {
		out[i] = inv.ID
	}
	return out
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	var d models.Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"`+s+`"`)))
	return d
}
