package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice amounts are stored in integer cents.
type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Amount     int64     `gorm:"index" json:"amount"`
	Status     string    `gorm:"index" json:"status"`
	Date       time.Time `gorm:"type:date" json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}
