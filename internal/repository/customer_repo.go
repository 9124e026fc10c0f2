package repository

import (
	"context"

	"gorm.io/gorm"

	"invoice-manager-backend/internal/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns all customers ordered by name, for the invoice form dropdown.
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}
