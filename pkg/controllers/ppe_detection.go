package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type PpeDetectionController struct {
	ppeModel *models.PpeDetectionModel
}

func NewPpeDetectionController(ppeModel *models.PpeDetectionModel) *PpeDetectionController {
	return &PpeDetectionController{
		ppeModel: ppeModel,
	}
}

func (p *PpeDetectionController) HandleList(c *fiber.Ctx) error {
	req := new(models.DetectionListReq)
	if err := c.QueryParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	rows, pg, err := p.ppeModel.List(req, utils.PageQueryFromCtx(c), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, rows, pg)
}

func (p *PpeDetectionController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := p.ppeModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, row)
}

func (p *PpeDetectionController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.PpeDetectionReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	row, err := p.ppeModel.Create(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, row)
}

func (p *PpeDetectionController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := p.ppeModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "detection deleted")
}

func (p *PpeDetectionController) HandleDailyChart(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	chart, err := p.ppeModel.DailyChart(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (p *PpeDetectionController) HandleLatestChart(c *fiber.Ctx) error {
	chart, err := p.ppeModel.LatestChart()
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (p *PpeDetectionController) HandleExport(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	buf, filename, err := p.ppeModel.Export(req)
	if err != nil {
		return sendModelError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
