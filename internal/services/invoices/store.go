package invoices

import (
	"context"

	"github.com/google/uuid"

	"invoice-manager-backend/internal/models"
	"invoice-manager-backend/internal/repository"
)

// Store defines the persistence interface for invoice mutations. Each method
// maps to a single SQL statement; concurrency control stays in the database.
type Store interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	Search(ctx context.Context, query string, limit, offset int) ([]repository.InvoiceListItem, error)
}

// AuditStore appends one row per mutation.
type AuditStore interface {
	Append(ctx context.Context, entry *models.InvoiceAuditLog) error
}
