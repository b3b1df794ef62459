package models

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type WeaponDetectionModel struct {
	app       *config.AppConfig
	ds        *dbservice.DatabaseService
	fileModel *FileModel
}

func NewWeaponDetectionModel(app *config.AppConfig, ds *dbservice.DatabaseService, fileModel *FileModel) *WeaponDetectionModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if fileModel == nil {
		fileModel = NewFileModel(app)
	}

	return &WeaponDetectionModel{
		app:       app,
		ds:        ds,
		fileModel: fileModel,
	}
}

type WeaponDetectionReq struct {
	PrimaryAnalyticID uint64  `json:"primary_analytic_id" form:"primary_analytic_id" validate:"required,min=1"`
	CctvID            uint64  `json:"cctv_id" form:"cctv_id" validate:"required,min=1"`
	Category          string  `json:"category" form:"category" validate:"required,max=50"`
	Confidence        float64 `json:"confidence" form:"confidence" validate:"min=0,max=1"`
	DetectedAt        string  `json:"detected_at" form:"detected_at" validate:"omitempty"`
}

type WeaponDetectionRes struct {
	dbmodels.WeaponDetection
	ImageUrl string `json:"image_url,omitempty"`
}

func (m *WeaponDetectionModel) toRes(row dbmodels.WeaponDetection) WeaponDetectionRes {
	res := WeaponDetectionRes{WeaponDetection: row}
	if row.Image != "" {
		res.ImageUrl = m.fileModel.PublicUrl(row.Image)
	}
	return res
}

func (m *WeaponDetectionModel) List(req *DetectionListReq, pq utils.PageQuery, sortField, sortDir string) ([]WeaponDetectionRes, *utils.Pagination, error) {
	filter, err := req.filter()
	if err != nil {
		return nil, nil, err
	}
	sort := utils.ParseSort(sortField, sortDir, detectionSortFields, "detected_at", "DESC")

	rows, total, err := m.ds.GetWeaponDetections(filter, pq.Offset, pq.Limit, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	out := make([]WeaponDetectionRes, 0, len(rows))
	for _, row := range rows {
		out = append(out, m.toRes(row))
	}
	return out, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *WeaponDetectionModel) Get(id uint64) (*WeaponDetectionRes, error) {
	row, err := m.ds.GetWeaponDetectionByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	res := m.toRes(*row)
	return &res, nil
}

func (m *WeaponDetectionModel) Create(req *WeaponDetectionReq, image *multipart.FileHeader, userId uint64) (*WeaponDetectionRes, error) {
	if !categoryAllowed(req.Category, config.WeaponDetectionCategories) {
		return nil, fmt.Errorf("category %q: %w", req.Category, ErrInvalidInput)
	}
	if err := verifyDetectionRefs(m.ds, req.PrimaryAnalyticID, req.CctvID); err != nil {
		return nil, err
	}

	detectedAt, err := parseDetectedAt(req.DetectedAt)
	if err != nil {
		return nil, err
	}

	row := &dbmodels.WeaponDetection{
		PrimaryAnalyticID: req.PrimaryAnalyticID,
		CctvID:            req.CctvID,
		Category:          req.Category,
		Confidence:        req.Confidence,
		DetectedAt:        detectedAt,
	}

	if image != nil {
		relPath, err := m.fileModel.SaveUpload(image, "weapon-detection", userId, "detection")
		if err != nil {
			return nil, err
		}
		row.Image = relPath
	}

	if err := m.ds.CreateWeaponDetection(row); err != nil {
		_ = m.fileModel.DeleteFile(row.Image)
		return nil, err
	}

	res := m.toRes(*row)
	return &res, nil
}

func (m *WeaponDetectionModel) Delete(id uint64) error {
	row, err := m.ds.GetWeaponDetectionByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}

	if err := m.ds.DeleteWeaponDetection(row); err != nil {
		return err
	}
	return m.fileModel.DeleteFile(row.Image)
}

func (m *WeaponDetectionModel) DailyChart(req *ChartReq) (*ChartData, error) {
	return dailyCategoryChart(m.ds, &dbmodels.WeaponDetection{}, req, config.WeaponDetectionCategories)
}

func (m *WeaponDetectionModel) LatestChart() (*ChartData, error) {
	return latestDayChart(m.ds, &dbmodels.WeaponDetection{}, config.WeaponDetectionCategories)
}

func (m *WeaponDetectionModel) Export(req *ChartReq) (*bytes.Buffer, string, error) {
	filter, stem, err := exportRange(req)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := m.ds.GetWeaponDetections(filter, 0, -1, "detected_at ASC")
	if err != nil {
		return nil, "", err
	}

	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{
			row.ID, row.PrimaryAnalyticID, row.CctvID, row.Category,
			row.Confidence, formatExportTime(row.DetectedAt),
		})
	}

	buf, err := exportXlsx("Weapon Detection",
		[]string{"ID", "Primary Analytic ID", "CCTV ID", "Category", "Confidence", "Detected At"}, data)
	if err != nil {
		return nil, "", err
	}

	return buf, fmt.Sprintf("weapon-detection_%s.xlsx", stem), nil
}
