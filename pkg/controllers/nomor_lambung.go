package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type NomorLambungController struct {
	nlModel *models.NomorLambungModel
}

func NewNomorLambungController(nlModel *models.NomorLambungModel) *NomorLambungController {
	return &NomorLambungController{
		nlModel: nlModel,
	}
}

func (n *NomorLambungController) HandleList(c *fiber.Ctx) error {
	req := new(models.DetectionListReq)
	if err := c.QueryParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	rows, p, err := n.nlModel.List(req, utils.PageQueryFromCtx(c), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, rows, p)
}

func (n *NomorLambungController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := n.nlModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, row)
}

func (n *NomorLambungController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.NomorLambungReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	row, err := n.nlModel.Create(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, row)
}

func (n *NomorLambungController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := n.nlModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "detection deleted")
}

func (n *NomorLambungController) HandleDailyChart(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	chart, err := n.nlModel.DailyChart(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (n *NomorLambungController) HandleLatestChart(c *fiber.Ctx) error {
	chart, err := n.nlModel.LatestChart()
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (n *NomorLambungController) HandleExport(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	buf, filename, err := n.nlModel.Export(req)
	if err != nil {
		return sendModelError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
