package models

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/goccy/go-json"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/milvus"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/recognition"
)

// MilvusModel fronts the vector database and the recognition backend
// for the face-data endpoints.
type MilvusModel struct {
	app         *config.AppConfig
	milvus      *milvus.MilvusService
	recognition *recognition.RecognitionService
}

func NewMilvusModel(app *config.AppConfig, ms *milvus.MilvusService, rs *recognition.RecognitionService) *MilvusModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ms == nil {
		ms = milvus.New(app)
	}
	if rs == nil {
		rs = recognition.New(app)
	}

	return &MilvusModel{
		app:         app,
		milvus:      ms,
		recognition: rs,
	}
}

type MilvusQueryReq struct {
	Collection   string   `json:"collection" query:"collection" validate:"required,max=255"`
	OutputFields []string `json:"output_fields" query:"output_fields" validate:"omitempty,dive,max=255"`
	Limit        int      `json:"limit" query:"limit" validate:"omitempty,min=1,max=1000"`
	Offset       int      `json:"offset" query:"offset" validate:"omitempty,min=0"`
}

type MilvusInsertReq struct {
	Collection string                   `json:"collection" validate:"required,max=255"`
	Entities   []map[string]interface{} `json:"entities" validate:"required,min=1"`
}

type FaceRegisterReq struct {
	UserID           string `json:"user_id" form:"user_id" validate:"required,max=125"`
	RegisteredFaceID string `json:"registered_face_id" form:"registered_face_id" validate:"required,max=125"`
}

func (m *MilvusModel) ListCollections(ctx context.Context) ([]string, error) {
	return m.milvus.ListCollections(ctx)
}

func (m *MilvusModel) DescribeCollection(ctx context.Context, collection string) (*milvus.CollectionInfo, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection is required: %w", ErrInvalidInput)
	}
	return m.milvus.DescribeCollection(ctx, collection)
}

func (m *MilvusModel) Query(ctx context.Context, req *MilvusQueryReq) ([]map[string]interface{}, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = config.DefaultPageLimit
	}
	outputFields := req.OutputFields
	if len(outputFields) == 0 {
		outputFields = []string{"*"}
	}

	return m.milvus.QueryAll(ctx, req.Collection, outputFields, limit, req.Offset)
}

func (m *MilvusModel) QueryByID(ctx context.Context, collection string, id int64) (map[string]interface{}, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection is required: %w", ErrInvalidInput)
	}

	rows, err := m.milvus.QueryByID(ctx, collection, id, []string{"*"})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (m *MilvusModel) Insert(ctx context.Context, req *MilvusInsertReq) (json.RawMessage, error) {
	return m.milvus.Insert(ctx, req.Collection, req.Entities)
}

func (m *MilvusModel) DeleteByID(ctx context.Context, collection string, id int64) error {
	if collection == "" {
		return fmt.Errorf("collection is required: %w", ErrInvalidInput)
	}
	return m.milvus.DeleteByID(ctx, collection, id)
}

// RegisterFace forwards the uploaded face images to the recognition
// backend. Files are read into memory; the recognition request caps the
// useful size well below the upload limit anyway.
func (m *MilvusModel) RegisterFace(ctx context.Context, req *FaceRegisterReq, files []*multipart.FileHeader) (*recognition.RegisterResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("at least one image is required: %w", ErrInvalidInput)
	}

	images := make([]recognition.ImagePart, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, recognition.ImagePart{FileName: fh.Filename, Content: content})
	}

	return m.recognition.RegisterFace(ctx, req.UserID, req.RegisteredFaceID, images)
}
