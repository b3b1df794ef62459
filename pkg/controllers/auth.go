package controllers

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type AuthController struct {
	app       *config.AppConfig
	authModel *models.AuthModel
}

func NewAuthController(app *config.AppConfig, authModel *models.AuthModel) *AuthController {
	return &AuthController{
		app:       app,
		authModel: authModel,
	}
}

func (a *AuthController) HandleRegister(c *fiber.Ctx) error {
	req := new(models.RegisterReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	user, err := a.authModel.Register(req)
	if err != nil {
		return sendModelError(c, err)
	}

	return utils.SendData(c, fiber.StatusCreated, user)
}

func (a *AuthController) HandleLogin(c *fiber.Ctx) error {
	req := new(models.LoginReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	token, user, err := a.authModel.Login(req)
	if err != nil {
		return sendModelError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     config.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(*a.app.Client.TokenValidity),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendData(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (a *AuthController) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     config.AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendMessage(c, fiber.StatusOK, "logged out")
}

func (a *AuthController) HandleMe(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	user, err := a.authModel.GetUser(session.UserID)
	if err != nil {
		return sendModelError(c, err)
	}

	return utils.SendData(c, fiber.StatusOK, user)
}

// sessionToken pulls the session JWT from the auth cookie, falling back
// to a bearer header for non-browser clients.
func sessionToken(c *fiber.Ctx) string {
	if tok := c.Cookies(config.AuthCookieName); tok != "" {
		return tok
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// AuthenticateToken guards routes that need a logged-in user.
func (a *AuthController) AuthenticateToken(c *fiber.Ctx) error {
	tok := sessionToken(c)
	if tok == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	session, err := a.authModel.VerifyAuthToken(tok)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid or expired token")
	}

	c.Locals(sessionLocalKey, session)
	return c.Next()
}

// securityToken pulls a static API token from the headers edge devices
// and internal services send them in.
func securityToken(c *fiber.Ctx) string {
	for _, h := range []string{"x-security-token", "x-api-token", "x-access-token"} {
		if tok := c.Get(h); tok != "" {
			return tok
		}
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func tokenMatches(token string, allowed []string) bool {
	ok := false
	for _, a := range allowed {
		if subtle.ConstantTimeCompare([]byte(token), []byte(a)) == 1 {
			ok = true
		}
	}
	return ok
}

// RequireSecurityToken guards machine endpoints with the static token
// list of the given purpose. Missing token is 401, a wrong one 403.
func (a *AuthController) RequireSecurityToken(purpose string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := securityToken(c)
		if tok == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "security token required")
		}

		if !tokenMatches(tok, a.app.SecurityTokens.ByPurpose(purpose)) {
			return utils.SendError(c, fiber.StatusForbidden, "invalid security token")
		}

		return c.Next()
	}
}

// FlexibleAuth admits either a logged-in user or a general security
// token, for endpoints both dashboards and devices call.
func (a *AuthController) FlexibleAuth(c *fiber.Ctx) error {
	if tok := sessionToken(c); tok != "" {
		if session, err := a.authModel.VerifyAuthToken(tok); err == nil {
			c.Locals(sessionLocalKey, session)
			return c.Next()
		}
	}

	if tok := securityToken(c); tok != "" &&
		tokenMatches(tok, a.app.SecurityTokens.ByPurpose(config.TokenPurposeGeneral)) {
		return c.Next()
	}

	return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
}
