package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-manager-backend/internal/repository"
)

type CustomerHandler struct {
	customers *repository.CustomerRepository
}

func NewCustomerHandler(customers *repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List returns all customers for the invoice form dropdown.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to Fetch Customers."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
