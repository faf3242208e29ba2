package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/auth"
)

type authFixture struct {
	service *AuthService
	users   *mockUserStore
	tokens  *mockTokenStore
}

func newAuthFixture() *authFixture {
	users := newMockUserStore()
	tokens := newMockTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "profrate.test",
	})
	return &authFixture{
		service: NewAuthService(users, tokens, jwtService, zerolog.Nop()),
		users:   users,
		tokens:  tokens,
	}
}

func registerReq(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "s3cretpass",
	}
}

func TestRegisterCreatesUserAndLogsIn(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.service.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotZero(t, resp.User.ID)

	// Password must be stored hashed, never verbatim
	stored, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "s3cretpass"))
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.RegisterRequest
	}{
		{"short username", &dto.RegisterRequest{Username: "ab", Email: "a@example.com", Password: "s3cretpass"}},
		{"bad username chars", &dto.RegisterRequest{Username: "has space", Email: "a@example.com", Password: "s3cretpass"}},
		{"bad email", &dto.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "s3cretpass"}},
		{"short password", &dto.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Register(ctx, tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	_, err = f.service.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cretpass",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	resp, err := f.service.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)

	stored, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	_, err = f.service.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrongpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	f := newAuthFixture()

	// Unknown usernames yield the same error as bad passwords
	_, err := f.service.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "whatever1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.service.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	f.users.users[resp.User.ID].IsActive = false

	_, err = f.service.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.service.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, resp.Token.RefreshToken))

	_, err = f.service.RefreshToken(ctx, resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogoutEmptyToken(t *testing.T) {
	f := newAuthFixture()

	err := f.service.Logout(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.service.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	original := resp.Token.RefreshToken

	renewed, err := f.service.RefreshToken(ctx, original)
	require.NoError(t, err)
	assert.NotEqual(t, original, renewed.Token.RefreshToken)

	// The exchanged token cannot be used a second time
	_, err = f.service.RefreshToken(ctx, original)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshUnknownToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RefreshToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
