package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"invoice-manager-backend/internal/models"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Append records one mutation against an invoice.
func (r *AuditLogRepository) Append(ctx context.Context, entry *models.InvoiceAuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
