package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-manager-backend/internal/forms"
	"invoice-manager-backend/internal/services/auth"
)

type AuthHandler struct {
	service    *auth.Service
	maxPayload int
}

func NewAuthHandler(service *auth.Service, maxPayload int) *AuthHandler {
	return &AuthHandler{service: service, maxPayload: maxPayload}
}

// Login authenticates an email/password form submission.
func (h *AuthHandler) Login(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return
	}
	values := c.Request.PostForm

	if forms.PayloadTooLarge(values, h.maxPayload) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": forms.MsgPayloadTooLarge})
		return
	}

	session, msg, err := h.service.Login(c.Request.Context(), values)
	if err != nil {
		// Outside the provider's taxonomy; the request fails at the transport.
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if msg != "" {
		status := http.StatusUnauthorized
		if msg == auth.MsgInvalidInput {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"message": msg})
		return
	}

	c.JSON(http.StatusOK, session)
}
