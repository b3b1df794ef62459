package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

func newTokenTestModel(secret string, validity time.Duration) *AuthModel {
	app := &config.AppConfig{}
	app.Client.JwtSecret = secret
	app.Client.TokenValidity = &validity
	return &AuthModel{app: app}
}

func TestAuthTokenRoundTrip(t *testing.T) {
	m := newTokenTestModel("0123456789abcdef0123456789abcdef", time.Hour)

	user := &dbmodels.User{
		ID:    42,
		Email: "ops@example.com",
		Roles: []dbmodels.Role{{Name: "admin"}, {Name: "viewer"}},
	}

	token, err := m.GenerateAuthToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := m.VerifyAuthToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), session.UserID)
	assert.Equal(t, "ops@example.com", session.Email)
	assert.Equal(t, []string{"admin", "viewer"}, session.Roles)
}

func TestAuthTokenRejections(t *testing.T) {
	m := newTokenTestModel("0123456789abcdef0123456789abcdef", time.Hour)
	user := &dbmodels.User{ID: 1, Email: "ops@example.com"}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := m.GenerateAuthToken(user)
		require.NoError(t, err)

		other := newTokenTestModel("fedcba9876543210fedcba9876543210", time.Hour)
		_, err = other.VerifyAuthToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		stale := newTokenTestModel("0123456789abcdef0123456789abcdef", -time.Hour)
		token, err := stale.GenerateAuthToken(user)
		require.NoError(t, err)

		_, err = m.VerifyAuthToken(token)
		require.Error(t, err)
	})

	t.Run("not a token", func(t *testing.T) {
		_, err := m.VerifyAuthToken("definitely.not.jwt")
		require.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := m.VerifyAuthToken("")
		require.Error(t, err)
	})
}
