package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"invoice-manager-backend/internal/config"
	"invoice-manager-backend/internal/middleware"
	"invoice-manager-backend/internal/models"
)

// UserStore looks up stored credentials.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// DatabaseProvider verifies credentials against the users table and issues
// an HS256 session token.
type DatabaseProvider struct {
	users UserStore
	jwt   config.JWTConfig
	now   func() time.Time
}

func NewDatabaseProvider(users UserStore, jwtCfg config.JWTConfig) *DatabaseProvider {
	return &DatabaseProvider{users: users, jwt: jwtCfg, now: time.Now}
}

func (p *DatabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProviderError{Kind: KindInvalidCredentials, Err: err}
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Not an authentication outcome; let the transport fail.
			return nil, err
		}
		return nil, &ProviderError{Kind: KindProviderFailure, Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &ProviderError{Kind: KindInvalidCredentials, Err: err}
	}

	expiresAt := p.now().Add(p.jwt.AccessTokenTTL)
	token, err := middleware.GenerateToken(user.ID, user.Email, &p.jwt)
	if err != nil {
		return nil, &ProviderError{Kind: KindProviderFailure, Err: err}
	}

	return &Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}
