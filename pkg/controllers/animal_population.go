package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type AnimalPopulationController struct {
	apModel *models.AnimalPopulationModel
}

func NewAnimalPopulationController(apModel *models.AnimalPopulationModel) *AnimalPopulationController {
	return &AnimalPopulationController{
		apModel: apModel,
	}
}

func (a *AnimalPopulationController) HandleList(c *fiber.Ctx) error {
	req := new(models.DetectionListReq)
	if err := c.QueryParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	rows, p, err := a.apModel.List(req, utils.PageQueryFromCtx(c), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, rows, p)
}

func (a *AnimalPopulationController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := a.apModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, row)
}

func (a *AnimalPopulationController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.AnimalPopulationReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	row, err := a.apModel.Create(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, row)
}

func (a *AnimalPopulationController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := a.apModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "detection deleted")
}

func (a *AnimalPopulationController) HandleDailyChart(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	chart, err := a.apModel.DailyChart(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (a *AnimalPopulationController) HandleLatestChart(c *fiber.Ctx) error {
	chart, err := a.apModel.LatestChart()
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (a *AnimalPopulationController) HandleExport(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	buf, filename, err := a.apModel.Export(req)
	if err != nil {
		return sendModelError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
