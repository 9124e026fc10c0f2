package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"invoice-manager-backend/internal/cache"
	"invoice-manager-backend/internal/forms"
	"invoice-manager-backend/internal/models"
	"invoice-manager-backend/internal/repository"
)

// Errors
var (
	// ErrDatabase replaces any persistence failure surfaced to a caller.
	// The underlying error is logged, never returned.
	ErrDatabase = errors.New("database error")
	ErrNotFound = errors.New("invoice not found")
)

// PageSize is the number of invoices per listing page.
const PageSize = 6

type Service struct {
	store Store
	audit AuditStore
	cache cache.Invalidator
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(store Store, audit AuditStore, invalidator cache.Invalidator, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		audit: audit,
		cache: invalidator,
		log:   log,
		now:   time.Now,
	}
}

// Create inserts a validated invoice dated today, then invalidates the
// listing route. Re-invoking create produces a duplicate row; retries are
// the caller's concern.
func (s *Service) Create(ctx context.Context, actor string, input *forms.InvoiceInput) (*models.Invoice, error) {
	invoice := &models.Invoice{
		CustomerID: input.CustomerID,
		Amount:     input.AmountCents,
		Status:     input.Status,
		Date:       s.today(),
	}

	if err := s.store.Create(ctx, invoice); err != nil {
		s.log.Error().Err(err).Str("op", "create_invoice").Msg("insert failed")
		return nil, ErrDatabase
	}

	s.recordAudit(ctx, invoice.ID, "create", actor, map[string]interface{}{
		"customer_id": invoice.CustomerID.String(),
		"amount":      invoice.Amount,
		"status":      invoice.Status,
	})
	s.invalidateListing(ctx)
	return invoice, nil
}

// Update issues a single update keyed by id. The invoice date is not touched.
func (s *Service) Update(ctx context.Context, actor string, input *forms.InvoiceInput) (*models.Invoice, error) {
	invoice := &models.Invoice{
		ID:         input.ID,
		CustomerID: input.CustomerID,
		Amount:     input.AmountCents,
		Status:     input.Status,
	}

	if err := s.store.Update(ctx, invoice); err != nil {
		s.log.Error().Err(err).Str("op", "update_invoice").Str("invoice_id", input.ID.String()).Msg("update failed")
		return nil, ErrDatabase
	}

	s.recordAudit(ctx, invoice.ID, "update", actor, map[string]interface{}{
		"customer_id": invoice.CustomerID.String(),
		"amount":      invoice.Amount,
		"status":      invoice.Status,
	})
	s.invalidateListing(ctx)
	return invoice, nil
}

// Delete removes the invoice if present. A well-formed id that matches no
// row still succeeds (zero rows affected).
func (s *Service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("op", "delete_invoice").Str("invoice_id", id.String()).Msg("delete failed")
		return ErrDatabase
	}

	s.recordAudit(ctx, id, "delete", actor, nil)
	s.invalidateListing(ctx)
	return nil
}

// Get fetches one invoice for the edit form.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error().Err(err).Str("op", "get_invoice").Str("invoice_id", id.String()).Msg("lookup failed")
		return nil, ErrDatabase
	}
	return invoice, nil
}

// List returns one page of the invoices listing.
func (s *Service) List(ctx context.Context, query string, page int) ([]repository.InvoiceListItem, error) {
	if page < 1 {
		page = 1
	}
	items, err := s.store.Search(ctx, query, PageSize, (page-1)*PageSize)
	if err != nil {
		s.log.Error().Err(err).Str("op", "list_invoices").Msg("search failed")
		return nil, ErrDatabase
	}
	return items, nil
}

// today truncates the clock to a calendar date.
func (s *Service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.InvoicesRoute); err != nil {
		s.log.Warn().Err(err).Str("route", cache.InvoicesRoute).Msg("cache invalidation failed")
	}
}

// recordAudit appends a trail entry. Audit failures are logged and swallowed;
// the mutation already happened.
func (s *Service) recordAudit(ctx context.Context, invoiceID uuid.UUID, action, actor string, details map[string]interface{}) {
	entry := &models.InvoiceAuditLog{
		InvoiceID:   invoiceID,
		Action:      action,
		PerformedBy: actor,
		CreatedAt:   s.now(),
	}
	if details != nil {
		detailsJSON, _ := json.Marshal(details)
		entry.Details = datatypes.JSON(detailsJSON)
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", action).Str("invoice_id", invoiceID.String()).Msg("audit append failed")
	}
}
