package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

func TestHealthCheckDegraded(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cnf := &config.AppConfig{ORM: db}
	cnf.Client.JwtSecret = "0123456789abcdef0123456789abcdef"
	cnf.UploadFileSettings.Path = t.TempDir()
	_, err = config.New(cnf)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/health-check", HandleHealthCheck)

	// redis is not wired, so the service must report itself degraded
	req := httptest.NewRequest(http.MethodGet, "/health-check", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body utils.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)

	state, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", state["database"])
	assert.Equal(t, "down", state["redis"])
}
