package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoice-manager-backend/internal/cache"
	"invoice-manager-backend/internal/forms"
	"invoice-manager-backend/internal/middleware"
	"invoice-manager-backend/internal/services/invoices"
)

// ListingCache serves and stores the rendered listing payload. Satisfied by
// cache.RouteCache.
type ListingCache interface {
	Get(ctx context.Context, route string) ([]byte, bool, error)
	Set(ctx context.Context, route string, payload []byte) error
}

type InvoiceHandler struct {
	service    *invoices.Service
	cache      ListingCache
	maxPayload int
}

func NewInvoiceHandler(service *invoices.Service, routeCache ListingCache, maxPayload int) *InvoiceHandler {
	return &InvoiceHandler{service: service, cache: routeCache, maxPayload: maxPayload}
}

// actor is the authenticated email the JWT middleware stored on the context.
func actor(c *gin.Context) string {
	return c.GetString(middleware.ContextEmail)
}

// Create handles the invoice creation form. On success it invalidates the
// listing route and redirects there.
func (h *InvoiceHandler) Create(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return
	}
	values := c.Request.PostForm

	if forms.PayloadTooLarge(values, h.maxPayload) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": forms.MsgPayloadTooLarge})
		return
	}

	input, errs := forms.ParseInvoiceForm("", values)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Missing Fields. Failed to Create Invoice.",
			"errors":  errs,
		})
		return
	}

	if _, err := h.service.Create(c.Request.Context(), actor(c), input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Create Invoice."})
		return
	}

	c.Redirect(http.StatusSeeOther, cache.InvoicesRoute)
}

// Update handles the invoice edit form. The id is checked before the rest of
// the fields; a malformed id never reaches the database.
func (h *InvoiceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": forms.MsgInvalidID})
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return
	}
	values := c.Request.PostForm

	if forms.PayloadTooLarge(values, h.maxPayload) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": forms.MsgPayloadTooLarge})
		return
	}

	input, errs := forms.ParseInvoiceForm(id, values)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Missing Fields. Failed to Update Invoice.",
			"errors":  errs,
		})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), actor(c), input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Update Invoice."})
		return
	}

	c.Redirect(http.StatusSeeOther, cache.InvoicesRoute)
}

// Delete removes an invoice and reports a status message without redirecting.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": forms.MsgInvalidID})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor(c), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Delete Invoice."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted Invoice."})
}

// Get fetches one invoice for the edit form.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": forms.MsgInvalidID})
		return
	}

	invoice, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, invoices.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Fetch Invoice."})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// List serves the invoices listing. The unfiltered first page is cached
// under the route key that mutations invalidate.
func (h *InvoiceHandler) List(c *gin.Context) {
	query := c.Query("query")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	cacheable := query == "" && page == 1

	ctx := c.Request.Context()

	if cacheable {
		if payload, ok, err := h.cache.Get(ctx, cache.InvoicesRoute); err == nil && ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	items, err := h.service.List(ctx, query, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Fetch Invoices."})
		return
	}

	response := gin.H{
		"items": items,
		"page":  page,
	}

	if cacheable {
		if payload, err := json.Marshal(response); err == nil {
			// Best effort; the listing still renders if redis is down.
			_ = h.cache.Set(ctx, cache.InvoicesRoute, payload)
		}
	}

	c.JSON(http.StatusOK, response)
}
