package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

// sessionLocalKey is where auth middleware stores the verified session.
const sessionLocalKey = "session"

// sendModelError translates the model sentinel errors into the right
// status; anything unexpected is a 500 with a generic message so no
// internals leak.
func sendModelError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicate):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInUse),
		errors.Is(err, models.ErrNoCapacity),
		errors.Is(err, models.ErrInvalidInput):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return uint64(id), nil
}

// sessionFromCtx returns the session stored by AuthenticateToken, or
// nil for requests that came in on a security token only.
func sessionFromCtx(c *fiber.Ctx) *models.SessionInfo {
	if s, ok := c.Locals(sessionLocalKey).(*models.SessionInfo); ok {
		return s
	}
	return nil
}

// sessionUserID is the uploader identity used for file paths; security
// token requests fall back to user 0.
func sessionUserID(c *fiber.Ctx) uint64 {
	if s := sessionFromCtx(c); s != nil {
		return s.UserID
	}
	return 0
}
