package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type TypeAnalyticController struct {
	typeModel *models.TypeAnalyticModel
}

func NewTypeAnalyticController(typeModel *models.TypeAnalyticModel) *TypeAnalyticController {
	return &TypeAnalyticController{
		typeModel: typeModel,
	}
}

func parseTypeIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := parseIDParam(c, name)
	if err != nil {
		return 0, err
	}
	return int64(id), nil
}

func (t *TypeAnalyticController) HandleList(c *fiber.Ctx) error {
	types, p, err := t.typeModel.List(utils.PageQueryFromCtx(c),
		c.Query("search"), c.Query("sort"), c.Query("direction"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendPaginated(c, types, p)
}

func (t *TypeAnalyticController) HandleGet(c *fiber.Ctx) error {
	id, err := parseTypeIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	typ, err := t.typeModel.Get(id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, typ)
}

func (t *TypeAnalyticController) HandleCreate(c *fiber.Ctx) error {
	req := new(models.TypeAnalyticReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	typ, err := t.typeModel.Create(req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, typ)
}

func (t *TypeAnalyticController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseTypeIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := new(models.TypeAnalyticReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	typ, err := t.typeModel.Update(id, req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, typ)
}

func (t *TypeAnalyticController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseTypeIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := t.typeModel.Delete(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "type analytic deleted")
}

func (t *TypeAnalyticController) HandleCreateSubType(c *fiber.Ctx) error {
	typeId, err := parseTypeIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := new(models.SubTypeAnalyticReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	sub, err := t.typeModel.CreateSubType(typeId, req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, sub)
}

func (t *TypeAnalyticController) HandleUpdateSubType(c *fiber.Ctx) error {
	id, err := parseTypeIDParam(c, "subId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := new(models.SubTypeAnalyticReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	sub, err := t.typeModel.UpdateSubType(id, req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, sub)
}

func (t *TypeAnalyticController) HandleDeleteSubType(c *fiber.Ctx) error {
	id, err := parseTypeIDParam(c, "subId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := t.typeModel.DeleteSubType(id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "sub type deleted")
}
