package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type ServerController struct {
	serverModel *models.ServerModel
}

func NewServerController(serverModel *models.ServerModel) *ServerController {
	return &ServerController{
		serverModel: serverModel,
	}
}

func (s *ServerController) HandleList(c *fiber.Ctx) error {
	servers, p, err := s.serverModel.List(utils.PageQueryFromCtx(c),
		c.Query("search"), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, servers, p)
}

func (s *ServerController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	server, err := s.serverModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, server)
}

func (s *ServerController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.ServerReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	server, err := s.serverModel.Create(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, server)
}

func (s *ServerController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := new(models.ServerReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	server, err := s.serverModel.Update(id, req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, server)
}

func (s *ServerController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := s.serverModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "server deleted")
}

type selectServerReq struct {
	TypeAnalyticID int64    `json:"type_analytic_id" validate:"required,min=1"`
	Required       int64    `json:"required" validate:"omitempty,min=1"`
	ExcludeIDs     []uint64 `json:"exclude_ids" validate:"omitempty,dive,min=1"`
}

// HandleSelect picks the best server for a planned analytic without
// reserving anything, so schedulers can preview placement.
func (s *ServerController) HandleSelect(c *fiber.Ctx) error {
	req := new(selectServerReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	server, err := s.serverModel.SelectServer(req.TypeAnalyticID, req.Required, req.ExcludeIDs)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, server)
}
