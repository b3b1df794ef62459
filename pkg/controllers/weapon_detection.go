package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type WeaponDetectionController struct {
	wdModel *models.WeaponDetectionModel
}

func NewWeaponDetectionController(wdModel *models.WeaponDetectionModel) *WeaponDetectionController {
	return &WeaponDetectionController{
		wdModel: wdModel,
	}
}

func (w *WeaponDetectionController) HandleList(c *fiber.Ctx) error {
	req := new(models.DetectionListReq)
	if err := c.QueryParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	rows, p, err := w.wdModel.List(req, utils.PageQueryFromCtx(c), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, rows, p)
}

func (w *WeaponDetectionController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := w.wdModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, row)
}

func (w *WeaponDetectionController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.WeaponDetectionReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	image, _ := c.FormFile("image")

	row, err := w.wdModel.Create(req, image, sessionUserID(c))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, row)
}

func (w *WeaponDetectionController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := w.wdModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "detection deleted")
}

func (w *WeaponDetectionController) HandleDailyChart(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	chart, err := w.wdModel.DailyChart(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (w *WeaponDetectionController) HandleLatestChart(c *fiber.Ctx) error {
	chart, err := w.wdModel.LatestChart()
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, chart)
}

func (w *WeaponDetectionController) HandleExport(c *fiber.Ctx) error {
	req, errs := chartReqFromCtx(c)
	if errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	buf, filename, err := w.wdModel.Export(req)
	if err != nil {
		return sendModelError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
