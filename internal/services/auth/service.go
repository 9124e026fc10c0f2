package auth

import (
	"context"
	"errors"
	"net/url"

	"github.com/rs/zerolog"

	"invoice-manager-backend/internal/forms"
)

// Fixed user-facing messages. The message is empty on success.
const (
	MsgInvalidInput       = "Invalid input format."
	MsgInvalidCredentials = "Invalid credentials."
	MsgProviderFailure    = "Something went wrong."
)

type Service struct {
	provider CredentialsProvider
	log      zerolog.Logger
}

func NewService(provider CredentialsProvider, log zerolog.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// Login validates credential shape, then delegates to the provider. A shape
// failure never reaches the provider. Classified provider failures come back
// as a fixed message with a nil error; anything outside the provider's
// taxonomy is returned as the error and fails the request at the transport.
func (s *Service) Login(ctx context.Context, values url.Values) (*Session, string, error) {
	input, errs := forms.ParseLoginForm(values)
	if errs != nil {
		return nil, MsgInvalidInput, nil
	}

	session, err := s.provider.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) {
			if pe.Kind == KindInvalidCredentials {
				return nil, MsgInvalidCredentials, nil
			}
			s.log.Error().Err(err).Str("kind", pe.Kind).Msg("sign-in failed")
			return nil, MsgProviderFailure, nil
		}
		return nil, "", err
	}

	return session, "", nil
}
