package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"ncwcc-portal/internal/apiclient"
	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/pdf"
	"ncwcc-portal/internal/query"
	"ncwcc-portal/internal/storage"
)

const listCacheTTL = 60 * time.Second

// InvoiceService fetches invoices from the core business API and serves
// display-ready projections. Cached lists are queried locally with the
// pure query engine.
type InvoiceService struct {
	api     *apiclient.Client
	cache   *redis.Client // nil disables list caching
	pdf     *pdf.Renderer
	archive *storage.Archive // nil disables PDF archiving
}

func NewInvoiceService(api *apiclient.Client, cache *redis.Client, renderer *pdf.Renderer, archive *storage.Archive) *InvoiceService {
	return &InvoiceService{api: api, cache: cache, pdf: renderer, archive: archive}
}

// BuildListQuery serializes recognized filter keys into a query string.
// Unset keys are omitted entirely; status "all" means no status parameter.
func BuildListQuery(f query.Filter) string {
	v := url.Values{}
	if f.Status != "" && f.Status != "all" {
		v.Set("status", f.Status)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Ordering != "" {
		v.Set("ordering", f.Ordering)
	}
	if f.IsNDIS != nil {
		v.Set("is_ndis_invoice", strconv.FormatBool(*f.IsNDIS))
	}
	if f.EmailSent != nil {
		v.Set("email_sent", strconv.FormatBool(*f.EmailSent))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// decodeList accepts both a bare array and a paginated {results: [...]}
func decodeList(res *apiclient.Result) ([]models.Invoice, error) {
	var list []models.Invoice
	if err := res.Decode(&list); err == nil {
		return list, nil
	}
	var page struct {
		Results []models.Invoice `json:"results"`
	}
	if err := res.Decode(&page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetMyInvoices fetches the caller's invoices with the filters applied
// upstream
func (s *InvoiceService) GetMyInvoices(ctx context.Context, f query.Filter) ([]models.Invoice, *apiclient.Result) {
	res := s.api.Get(ctx, "/invoices/my/"+BuildListQuery(f))
	if !res.Success {
		return nil, res
	}
	list, err := decodeList(res)
	if err != nil {
		log.Printf("[Invoices] unexpected list payload: %v", err)
		return nil, &apiclient.Result{Status: res.Status, Message: "Unexpected invoice list payload"}
	}
	return list, res
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, *apiclient.Result) {
	res := s.api.Get(ctx, "/invoices/"+id+"/")
	if !res.Success {
		return nil, res
	}
	var inv models.Invoice
	if err := res.Decode(&inv); err != nil {
		log.Printf("[Invoices] unexpected invoice payload: %v", err)
		return nil, &apiclient.Result{Status: res.Status, Message: "Unexpected invoice payload"}
	}
	return &inv, res
}

// QueryCached serves a filtered view of the caller's invoices from the
// session-scoped cache, fetching the unfiltered list upstream on a miss.
// Filtering, search and ordering run through the local query engine.
func (s *InvoiceService) QueryCached(ctx context.Context, sessionID string, f query.Filter) ([]models.Invoice, *apiclient.Result) {
	key := "invoices:" + sessionID

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var list []models.Invoice
			if err := json.Unmarshal(data, &list); err == nil {
				return query.Apply(list, f), &apiclient.Result{Success: true, Status: http.StatusOK}
			}
		}
	}

	list, res := s.GetMyInvoices(ctx, query.Filter{})
	if !res.Success {
		return nil, res
	}

	if s.cache != nil {
		if data, err := json.Marshal(list); err == nil {
			if err := s.cache.Set(ctx, key, data, listCacheTTL).Err(); err != nil {
				log.Printf("[Invoices] failed to cache list: %v", err)
			}
		}
	}

	return query.Apply(list, f), res
}

// DownloadPDF fetches the invoice PDF from upstream, falling back to a
// locally rendered document when none has been generated yet. Local
// renders are archived best-effort.
func (s *InvoiceService) DownloadPDF(ctx context.Context, id string) ([]byte, string, string, *apiclient.Result) {
	data, contentType, res := s.api.GetBinary(ctx, "/invoices/"+id+"/download/")
	if res.Success {
		if contentType == "" {
			contentType = "application/pdf"
		}
		return data, contentType, "invoice-" + id + ".pdf", res
	}
	if res.Status != http.StatusNotFound {
		return nil, "", "", res
	}

	inv, dres := s.GetInvoice(ctx, id)
	if !dres.Success {
		return nil, "", "", dres
	}
	if !inv.CanDownloadPDF() {
		return nil, "", "", &apiclient.Result{
			Status:  http.StatusConflict,
			Message: "Draft invoices have no PDF available",
		}
	}

	rendered, err := s.pdf.Render(*inv)
	if err != nil {
		log.Printf("[Invoices] local PDF render failed: %v", err)
		return nil, "", "", &apiclient.Result{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate invoice PDF",
		}
	}

	if s.archive != nil {
		if err := s.archive.Put(ctx, "invoices/"+inv.InvoiceNumber+".pdf", rendered, "application/pdf"); err != nil {
			log.Printf("[Invoices] %v", err)
		}
	}

	filename := inv.InvoiceNumber + ".pdf"
	return rendered, "application/pdf", filename, &apiclient.Result{Success: true, Status: http.StatusOK}
}

// ResendEmail triggers the server-side resend action
func (s *InvoiceService) ResendEmail(ctx context.Context, id string) *apiclient.Result {
	return s.api.Post(ctx, "/invoices/"+id+"/resend/", nil)
}

// GetNDISInvoices lists invoices on the NDIS-scoped endpoint
func (s *InvoiceService) GetNDISInvoices(ctx context.Context, f query.Filter) ([]models.Invoice, *apiclient.Result) {
	res := s.api.Get(ctx, "/invoices/ndis/"+BuildListQuery(f))
	if !res.Success {
		return nil, res
	}
	list, err := decodeList(res)
	if err != nil {
		log.Printf("[Invoices] unexpected NDIS list payload: %v", err)
		return nil, &apiclient.Result{Status: res.Status, Message: "Unexpected invoice list payload"}
	}
	return list, res
}

// CheckNDISCompliance runs the upstream compliance check for one invoice
func (s *InvoiceService) CheckNDISCompliance(ctx context.Context, id string) *apiclient.Result {
	return s.api.Get(ctx, "/invoices/ndis/"+id+"/compliance/")
}
