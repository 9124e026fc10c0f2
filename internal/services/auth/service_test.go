package auth

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	session *Session
	err     error
	calls   int
}

func (f *fakeProvider) SignIn(_ context.Context, _, _ string) (*Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func loginValues(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func TestLogin_Success(t *testing.T) {
	want := &Session{Token: "token", UserID: uuid.New(), Email: "user@nextmail.com"}
	provider := &fakeProvider{session: want}
	svc := NewService(provider, zerolog.Nop())

	session, msg, err := svc.Login(context.Background(), loginValues("user@nextmail.com", "123456"))

	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Equal(t, want, session)
}

func TestLogin_BadShapeSkipsProvider(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewService(provider, zerolog.Nop())

	session, msg, err := svc.Login(context.Background(), loginValues("", "123456"))

	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, MsgInvalidInput, msg)
	assert.Zero(t, provider.calls, "provider must not be contacted on shape failure")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	provider := &fakeProvider{err: &ProviderError{Kind: KindInvalidCredentials, Err: errors.New("mismatch")}}
	svc := NewService(provider, zerolog.Nop())

	session, msg, err := svc.Login(context.Background(), loginValues("user@nextmail.com", "wrongpass"))

	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, MsgInvalidCredentials, msg)
}

func TestLogin_ProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: &ProviderError{Kind: KindProviderFailure, Err: errors.New("backend unavailable")}}
	svc := NewService(provider, zerolog.Nop())

	session, msg, err := svc.Login(context.Background(), loginValues("user@nextmail.com", "123456"))

	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, MsgProviderFailure, msg)
}

func TestLogin_UnclassifiedErrorPropagates(t *testing.T) {
	boom := errors.New("unexpected")
	provider := &fakeProvider{err: boom}
	svc := NewService(provider, zerolog.Nop())

	session, msg, err := svc.Login(context.Background(), loginValues("user@nextmail.com", "123456"))

	assert.Nil(t, session)
	assert.Empty(t, msg)
	assert.ErrorIs(t, err, boom)
}
