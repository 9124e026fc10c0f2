package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-manager-backend/internal/cache"
	"invoice-manager-backend/internal/models"
	"invoice-manager-backend/internal/repository"
	"invoice-manager-backend/internal/services/invoices"
)

type stubStore struct {
	created []*models.Invoice
	updated []*models.Invoice
	deleted []uuid.UUID
	items   []repository.InvoiceListItem
	fail    error
}

func (s *stubStore) Create(_ context.Context, invoice *models.Invoice) error {
	if s.fail != nil {
		return s.fail
	}
	invoice.ID = uuid.New()
	s.created = append(s.created, invoice)
	return nil
}

func (s *stubStore) Update(_ context.Context, invoice *models.Invoice) error {
	if s.fail != nil {
		return s.fail
	}
	s.updated = append(s.updated, invoice)
	return nil
}

func (s *stubStore) Delete(_ context.Context, id uuid.UUID) error {
	if s.fail != nil {
		return s.fail
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubStore) GetByID(_ context.Context, _ uuid.UUID) (*models.Invoice, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return nil, errors.New("not stubbed")
}

func (s *stubStore) Search(_ context.Context, _ string, _, _ int) ([]repository.InvoiceListItem, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return s.items, nil
}

type stubAudit struct{}

func (stubAudit) Append(_ context.Context, _ *models.InvoiceAuditLog) error { return nil }

type stubListingCache struct {
	payload     []byte
	invalidated []string
	sets        int
}

func (s *stubListingCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	if s.payload == nil {
		return nil, false, nil
	}
	return s.payload, true, nil
}

func (s *stubListingCache) Set(_ context.Context, _ string, payload []byte) error {
	s.sets++
	s.payload = payload
	return nil
}

func (s *stubListingCache) Invalidate(_ context.Context, route string) error {
	s.invalidated = append(s.invalidated, route)
	s.payload = nil
	return nil
}

func newInvoiceRouter(store *stubStore, listing *stubListingCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := invoices.NewService(store, stubAudit{}, listing, zerolog.Nop())
	h := NewInvoiceHandler(svc, listing, 1024)

	r := gin.New()
	r.POST("/dashboard/invoices", h.Create)
	r.PUT("/dashboard/invoices/:id", h.Update)
	r.DELETE("/dashboard/invoices/:id", h.Delete)
	r.GET("/dashboard/invoices", h.List)
	return r
}

func postForm(r *gin.Engine, method, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func invoiceForm() url.Values {
	return url.Values{
		"customerId": {"3958dc9e-712f-4377-85e9-fec4b6a6442a"},
		"amount":     {"15.50"},
		"status":     {"pending"},
	}
}

func TestCreateInvoice(t *testing.T) {
	store := &stubStore{}
	listing := &stubListingCache{}
	r := newInvoiceRouter(store, listing)

	w := postForm(r, http.MethodPost, "/dashboard/invoices", invoiceForm())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, cache.InvoicesRoute, w.Header().Get("Location"))

	require.Len(t, store.created, 1)
	created := store.created[0]
	assert.Equal(t, int64(1550), created.Amount)
	assert.Equal(t, "pending", created.Status)

	today := time.Now().UTC()
	assert.Equal(t, today.Year(), created.Date.Year())
	assert.Equal(t, today.YearDay(), created.Date.YearDay())

	assert.Equal(t, []string{cache.InvoicesRoute}, listing.invalidated)
}

func TestCreateInvoice_ValidationFailure(t *testing.T) {
	store := &stubStore{}
	r := newInvoiceRouter(store, &stubListingCache{})

	form := invoiceForm()
	form.Set("amount", "-3")

	w := postForm(r, http.MethodPost, "/dashboard/invoices", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter an amount greater than $0.")
	assert.Empty(t, store.created, "no mutation on validation failure")
}

func TestCreateInvoice_PayloadTooLarge(t *testing.T) {
	store := &stubStore{}
	r := newInvoiceRouter(store, &stubListingCache{})

	form := invoiceForm()
	form.Set("padding", strings.Repeat("x", 2048))

	w := postForm(r, http.MethodPost, "/dashboard/invoices", form)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "Payload too large.")
	assert.Empty(t, store.created)
}

func TestCreateInvoice_DatabaseError(t *testing.T) {
	store := &stubStore{fail: errors.New("connection refused")}
	r := newInvoiceRouter(store, &stubListingCache{})

	w := postForm(r, http.MethodPost, "/dashboard/invoices", invoiceForm())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Database Error: Failed to Create Invoice.")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestUpdateInvoice(t *testing.T) {
	store := &stubStore{}
	listing := &stubListingCache{}
	r := newInvoiceRouter(store, listing)

	id := uuid.New()
	form := invoiceForm()
	form.Set("status", "paid")

	w := postForm(r, http.MethodPut, "/dashboard/invoices/"+id.String(), form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, store.updated, 1)
	assert.Equal(t, id, store.updated[0].ID)
	assert.Equal(t, "paid", store.updated[0].Status)
	assert.Equal(t, []string{cache.InvoicesRoute}, listing.invalidated)
}

func TestUpdateInvoice_MalformedID(t *testing.T) {
	store := &stubStore{}
	r := newInvoiceRouter(store, &stubListingCache{})

	w := postForm(r, http.MethodPut, "/dashboard/invoices/not-a-uuid", invoiceForm())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ID format")
	assert.Empty(t, store.updated, "no database call for a malformed id")
}

func TestDeleteInvoice(t *testing.T) {
	store := &stubStore{}
	listing := &stubListingCache{}
	r := newInvoiceRouter(store, listing)

	id := uuid.New()
	w := postForm(r, http.MethodDelete, "/dashboard/invoices/"+id.String(), url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deleted Invoice.")
	assert.Equal(t, []uuid.UUID{id}, store.deleted)
	assert.Equal(t, []string{cache.InvoicesRoute}, listing.invalidated)
}

func TestDeleteInvoice_NonExistentID(t *testing.T) {
	// Zero rows affected is still a success.
	store := &stubStore{}
	r := newInvoiceRouter(store, &stubListingCache{})

	w := postForm(r, http.MethodDelete, "/dashboard/invoices/"+uuid.New().String(), url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deleted Invoice.")
}

func TestDeleteInvoice_MalformedID(t *testing.T) {
	store := &stubStore{}
	r := newInvoiceRouter(store, &stubListingCache{})

	w := postForm(r, http.MethodDelete, "/dashboard/invoices/1234", url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ID format")
	assert.Empty(t, store.deleted)
}

func TestListInvoices_CachesDefaultPage(t *testing.T) {
	store := &stubStore{items: []repository.InvoiceListItem{{
		ID:           uuid.New(),
		CustomerName: "Lee Robinson",
		Amount:       3040,
		Status:       "paid",
	}}}
	listing := &stubListingCache{}
	r := newInvoiceRouter(store, listing)

	w := postForm(r, http.MethodGet, "/dashboard/invoices", url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lee Robinson")
	assert.Equal(t, 1, listing.sets, "default page is cached")

	// Second request is served from the cache.
	w2 := postForm(r, http.MethodGet, "/dashboard/invoices", url.Values{})
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, w.Body.String(), w2.Body.String())
	assert.Equal(t, 1, listing.sets)
}

func TestListInvoices_FilteredPagesBypassCache(t *testing.T) {
	store := &stubStore{}
	listing := &stubListingCache{payload: []byte(`{"items":[],"page":1}`)}
	r := newInvoiceRouter(store, listing)

	w := postForm(r, http.MethodGet, "/dashboard/invoices?query=lee", url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, listing.sets, "filtered views are never cached")
}
