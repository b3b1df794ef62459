package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type PrimaryAnalyticController struct {
	paModel *models.PrimaryAnalyticModel
}

func NewPrimaryAnalyticController(paModel *models.PrimaryAnalyticModel) *PrimaryAnalyticController {
	return &PrimaryAnalyticController{
		paModel: paModel,
	}
}

func (p *PrimaryAnalyticController) HandleList(c *fiber.Ctx) error {
	analytics, pg, err := p.paModel.List(utils.PageQueryFromCtx(c),
		c.Query("search"), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, analytics, pg)
}

func (p *PrimaryAnalyticController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	pa, err := p.paModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, pa)
}

func (p *PrimaryAnalyticController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.PrimaryAnalyticReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	pa, err := p.paModel.Create(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, pa)
}

func (p *PrimaryAnalyticController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := new(models.PrimaryAnalyticReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	pa, err := p.paModel.Update(id, req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, pa)
}

func (p *PrimaryAnalyticController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := p.paModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "primary analytic deleted")
}
