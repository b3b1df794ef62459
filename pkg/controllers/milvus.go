package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/models"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type MilvusController struct {
	milvusModel *models.MilvusModel
}

func NewMilvusController(milvusModel *models.MilvusModel) *MilvusController {
	return &MilvusController{
		milvusModel: milvusModel,
	}
}

func (m *MilvusController) HandleListCollections(c *fiber.Ctx) error {
	names, err := m.milvusModel.ListCollections(c.UserContext())
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, names)
}

func (m *MilvusController) HandleDescribeCollection(c *fiber.Ctx) error {
	info, err := m.milvusModel.DescribeCollection(c.UserContext(), c.Params("collection"))
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, info)
}

func (m *MilvusController) HandleQuery(c *fiber.Ctx) error {
	req := &models.MilvusQueryReq{Collection: c.Params("collection")}
	if err := c.QueryParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	req.Collection = c.Params("collection")
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	rows, err := m.milvusModel.Query(c.UserContext(), req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, rows)
}

func (m *MilvusController) HandleQueryByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	row, err := m.milvusModel.QueryByID(c.UserContext(), c.Params("collection"), id)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, row)
}

func (m *MilvusController) HandleInsert(c *fiber.Ctx) error {
	req := new(models.MilvusInsertReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	res, err := m.milvusModel.Insert(c.UserContext(), req)
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusCreated, res)
}

func (m *MilvusController) HandleDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := m.milvusModel.DeleteByID(c.UserContext(), c.Params("collection"), id); err != nil {
		return sendModelError(c, err)
	}
	return utils.SendMessage(c, fiber.StatusOK, "entity deleted")
}

// HandleRegisterFace forwards uploaded face images to the recognition
// backend.
func (m *MilvusController) HandleRegisterFace(c *fiber.Ctx) error {
	req := new(models.FaceRegisterReq)
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := models.ValidateRequest(req); errs != nil {
		return utils.SendValidationErrors(c, errs)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "multipart form required")
	}

	res, err := m.milvusModel.RegisterFace(c.UserContext(), req, form.File["images"])
	if err != nil {
		return sendModelError(c, err)
	}
	return utils.SendData(c, fiber.StatusOK, res)
}
