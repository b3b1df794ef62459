package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

func TestSendModelError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", models.ErrNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("server 5: %w", models.ErrNotFound), fiber.StatusNotFound},
		{"duplicate", models.ErrDuplicate, fiber.StatusConflict},
		{"in use", models.ErrInUse, fiber.StatusBadRequest},
		{"no capacity", models.ErrNoCapacity, fiber.StatusBadRequest},
		{"invalid input", models.ErrInvalidInput, fiber.StatusBadRequest},
		{"bad credentials", models.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"anything else", errors.New("driver: bad connection"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/e", func(c *fiber.Ctx) error {
				return sendModelError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/e", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body utils.Envelope
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)

			if tc.status == fiber.StatusInternalServerError {
				// internals must not leak to the client
				assert.Equal(t, "internal server error", body.Message)
			} else {
				assert.Equal(t, tc.err.Error(), body.Message)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	app := fiber.New()
	app.Get("/r/:id", func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return utils.SendData(c, fiber.StatusOK, id)
	})

	for path, status := range map[string]int{
		"/r/12":  fiber.StatusOK,
		"/r/0":   fiber.StatusBadRequest,
		"/r/-3":  fiber.StatusBadRequest,
		"/r/abc": fiber.StatusBadRequest,
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, path)
	}
}
