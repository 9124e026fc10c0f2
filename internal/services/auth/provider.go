package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Provider error kinds. Anything a provider reports is wrapped in a
// ProviderError; errors outside this taxonomy propagate to the transport.
const (
	KindInvalidCredentials = "invalid_credentials"
	KindProviderFailure    = "provider_failure"
)

// ProviderError is a classified sign-in failure.
type ProviderError struct {
	Kind string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("credentials provider: %s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Session is the provider-issued proof of authentication.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CredentialsProvider verifies an email/password pair and reports typed
// authentication errors.
type CredentialsProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
}
