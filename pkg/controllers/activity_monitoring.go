package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ActivityMonitoringController struct {
	amModel *models.ActivityMonitoringModel
}

func NewActivityMonitoringController(amModel *models.ActivityMonitoringModel) *ActivityMonitoringController {
	return &ActivityMonitoringController{
		amModel: amModel,
	}
}

func (a *ActivityMonitoringController) HandleList(c *fiber.Ctx) error {
	req := new(models.DetectionListReq)
	if err := c.QueryParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	rows, p, err := a.amModel.List(req, utils.PageQueryFromCtx(c), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, rows, p)
}

func (a *ActivityMonitoringController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := a.amModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, row)
}

// HandleCreate ingests one detection from an edge device, multipart so
// the frame snapshot rides along.
func (a *ActivityMonitoringController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.ActivityMonitoringReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	image, _ := c.FormFile("image")

	row, err := a.amModel.Create(req, image, sessionUserID(c))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, row)
}

func (a *ActivityMonitoringController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := a.amModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "detection deleted")
}

func chartReqFromCtx(c *fiber.Ctx) (*models.ChartReq, []utils.FieldError) {
	req := &models.ChartReq{
		StartDate: c.Query("start_date", c.Query("start")),
		EndDate:   c.Query("end_date", c.Query("end")),
	}
	return req, models.ValidateRequest(req)
}

func (a *ActivityMonitoringController) HandleDailyChart(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	chart, err := a.amModel.DailyChart(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (a *ActivityMonitoringController) HandleLatestChart(c *fiber.Ctx) error {
	chart, err := a.amModel.LatestChart()
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (a *ActivityMonitoringController) HandleExport(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	buf, filename, err := a.amModel.Export(req)
	if err != nil {
		return sendModelError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
