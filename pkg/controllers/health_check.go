package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

// HandleHealthCheck reports liveness plus the state of the database and
// redis connections.
func HandleHealthCheck(c *fiber.Ctx) error {
	app := config.GetConfig()

	dbStatus := "ok"
	if sqlDb, err := app.ORM.DB(); err != nil || sqlDb.Ping() != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if app.RDS == nil || app.RDS.Ping(c.UserContext()).Err() != nil {
		redisStatus = "down"
	}

	state := fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
	}

	if dbStatus != "ok" || redisStatus != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(&utils.Envelope{
			Success: false,
			Message: "service degraded",
			Data:    state,
		})
	}

	return utils.SendData(c, fiber.StatusOK, state)
}
