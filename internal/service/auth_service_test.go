package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/service"
)

const testSecret = "test-secret"

func newAuthService() (*service.AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return service.NewAuthService(repo, testSecret, 24*time.Hour), repo
}

func registerInput(username, email string) service.RegisterInput {
	return service.RegisterInput{
		Username: username,
		Email:    email,
		Password: "Sup3rSecret",
		Name:     "Test User",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("alice", "alice@example.com"))
	require.NoError(t, err)
	require.NotNil(t, reg.User)
	assert.NotEmpty(t, reg.Token)
	assert.NotEqual(t, "Sup3rSecret", reg.User.PasswordHash)
	assert.NotContains(t, reg.User.PasswordHash, "Sup3rSecret")

	login, err := svc.Login(ctx, service.LoginInput{Email: "alice@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestTokenResolvesToSameUser(t *testing.T) {
	svc, _ := newAuthService()

	reg, err := svc.Register(context.Background(), registerInput("bob", "bob@example.com"))
	require.NoError(t, err)

	token, err := jwt.Parse(reg.Token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID.String(), sub)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("carol", "carol@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("carol2", "carol@example.com"))
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("dave", "dave@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("dave", "dave2@example.com"))
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("erin", "erin@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, service.LoginInput{Email: "erin@example.com", Password: "WrongPass1"})
	assert.ErrorIs(t, err, service.ErrInvalidCreds)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "nobody@example.com", Password: "Sup3rSecret"})
	assert.ErrorIs(t, err, service.ErrInvalidCreds)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(repo, testSecret, -time.Minute)

	reg, err := svc.Register(context.Background(), registerInput("frank", "frank@example.com"))
	require.NoError(t, err)

	token, err := jwt.Parse(reg.Token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	assert.Error(t, err)
	if token != nil {
		assert.False(t, token.Valid)
	}
}
