package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJwtSecretLength(t *testing.T) {
	t.Run("rejects a short secret", func(t *testing.T) {
		cnf := &AppConfig{}
		cnf.Client.JwtSecret = "too-short"

		_, err := New(cnf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret")
	})

	t.Run("accepts a 32 character secret", func(t *testing.T) {
		cnf := &AppConfig{}
		cnf.Client.JwtSecret = "0123456789abcdef0123456789abcdef"
		cnf.UploadFileSettings.Path = t.TempDir()

		got, err := New(cnf)
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenValidity, *got.Client.TokenValidity)
	})
}
