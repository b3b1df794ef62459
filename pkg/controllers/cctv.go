package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type CctvController struct {
	cctvModel *models.CctvModel
}

func NewCctvController(cctvModel *models.CctvModel) *CctvController {
	return &CctvController{
		cctvModel: cctvModel,
	}
}

func (ct *CctvController) HandleList(c *fiber.Ctx) error {
	cctvs, p, err := ct.cctvModel.List(utils.PageQueryFromCtx(c),
		c.Query("search"), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, cctvs, p)
}

func (ct *CctvController) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	cctv, err := ct.cctvModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, cctv)
}

// HandleCreate accepts multipart form data so a polygon image can be
// uploaded together with the camera fields.
func (ct *CctvController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.CctvReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	// optional upload
	polygonImg, _ := c.FormFile("polygon_img")

	cctv, err := ct.cctvModel.Create(req, polygonImg, sessionUserID(c))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, cctv)
}

func (ct *CctvController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := new(models.CctvReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	polygonImg, _ := c.FormFile("polygon_img")

	cctv, err := ct.cctvModel.Update(id, req, polygonImg, sessionUserID(c))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, cctv)
}

func (ct *CctvController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ct.cctvModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "cctv deleted")
}
