package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"invoice-manager-backend/internal/models"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts a single invoice row. The id is generated here when the
// caller leaves it zero.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(invoice).Error
}

// Update issues a single UPDATE keyed by id. The invoice date stays as
// created; only the editable fields move.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"customer_id": invoice.CustomerID,
			"amount":      invoice.Amount,
			"status":      invoice.Status,
		}).Error
}

// Delete removes the row if present. Deleting an id that does not exist is
// not an error (zero rows affected).
func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id).Error
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// InvoiceListItem is one row of the invoices listing, joined with the
// customer it bills.
type InvoiceListItem struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

// Search lists invoices joined with their customers, newest first, filtered
// by a free-text query over customer name, email, amount and status.
func (r *InvoiceRepository) Search(ctx context.Context, query string, limit, offset int) ([]InvoiceListItem, error) {
	var items []InvoiceListItem

	dbQuery := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("invoices.id, invoices.customer_id, customers.name AS customer_name, customers.email AS customer_email, invoices.amount, invoices.status, invoices.date").
		Joins("JOIN customers ON customers.id = invoices.customer_id")

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ? OR invoices.amount::text LIKE ? OR invoices.status LIKE ?",
			like, like, like, like,
		)
	}

	err := dbQuery.
		Order("invoices.date DESC").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	return items, err
}
