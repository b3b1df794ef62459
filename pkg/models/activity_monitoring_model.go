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

type ActivityMonitoringModel struct {
	app       *config.AppConfig
	ds        *dbservice.DatabaseService
	fileModel *FileModel
}

func NewActivityMonitoringModel(app *config.AppConfig, ds *dbservice.DatabaseService, fileModel *FileModel) *ActivityMonitoringModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if fileModel == nil {
		fileModel = NewFileModel(app)
	}

	return &ActivityMonitoringModel{
		app:       app,
		ds:        ds,
		fileModel: fileModel,
	}
}

type ActivityMonitoringReq struct {
	PrimaryAnalyticID uint64 `json:"primary_analytic_id" form:"primary_analytic_id" validate:"required,min=1"`
	CctvID            uint64 `json:"cctv_id" form:"cctv_id" validate:"required,min=1"`
	Category          string `json:"category" form:"category" validate:"required,max=50"`
	PersonCount       int64  `json:"person_count" form:"person_count" validate:"min=0"`
	DetectedAt        string `json:"detected_at" form:"detected_at" validate:"omitempty"`
}

type ActivityMonitoringRes struct {
	dbmodels.ActivityMonitoring
	ImageUrl string `json:"image_url,omitempty"`
}

func (m *ActivityMonitoringModel) toRes(row dbmodels.ActivityMonitoring) ActivityMonitoringRes {
	res := ActivityMonitoringRes{ActivityMonitoring: row}
	if row.Image != "" {
		res.ImageUrl = m.fileModel.PublicUrl(row.Image)
	}
	return res
}

func (m *ActivityMonitoringModel) List(req *DetectionListReq, pq utils.PageQuery, sortField, sortDir string) ([]ActivityMonitoringRes, *utils.Pagination, error) {
	filter, err := req.filter()
	if err != nil {
		return nil, nil, err
	}
	sort := utils.ParseSort(sortField, sortDir, detectionSortFields, "detected_at", "DESC")

	rows, total, err := m.ds.GetActivityMonitorings(filter, pq.Offset, pq.Limit, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	out := make([]ActivityMonitoringRes, 0, len(rows))
	for _, row := range rows {
		out = append(out, m.toRes(row))
	}
	return out, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *ActivityMonitoringModel) Get(id uint64) (*ActivityMonitoringRes, error) {
	row, err := m.ds.GetActivityMonitoringByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	res := m.toRes(*row)
	return &res, nil
}

// Create ingests one detection. When the DB write fails after the
// snapshot was stored, the file is removed again so nothing is
// orphaned.
func (m *ActivityMonitoringModel) Create(req *ActivityMonitoringReq, image *multipart.FileHeader, userId uint64) (*ActivityMonitoringRes, error) {
	if !categoryAllowed(req.Category, config.ActivityMonitoringCategories) {
		return nil, fmt.Errorf("category %q: %w", req.Category, ErrInvalidInput)
	}
	if err := verifyDetectionRefs(m.ds, req.PrimaryAnalyticID, req.CctvID); err != nil {
		return nil, err
	}

	detectedAt, err := parseDetectedAt(req.DetectedAt)
	if err != nil {
		return nil, err
	}

	row := &dbmodels.ActivityMonitoring{
		PrimaryAnalyticID: req.PrimaryAnalyticID,
		CctvID:            req.CctvID,
		Category:          req.Category,
		PersonCount:       req.PersonCount,
		DetectedAt:        detectedAt,
	}

	if image != nil {
		relPath, err := m.fileModel.SaveUpload(image, "activity-monitoring", userId, "detection")
		if err != nil {
			return nil, err
		}
		row.Image = relPath
	}

	if err := m.ds.CreateActivityMonitoring(row); err != nil {
		_ = m.fileModel.DeleteFile(row.Image)
		return nil, err
	}

	res := m.toRes(*row)
	return &res, nil
}

func (m *ActivityMonitoringModel) Delete(id uint64) error {
	row, err := m.ds.GetActivityMonitoringByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}

	if err := m.ds.DeleteActivityMonitoring(row); err != nil {
		return err
	}
	return m.fileModel.DeleteFile(row.Image)
}

func (m *ActivityMonitoringModel) DailyChart(req *ChartReq) (*ChartData, error) {
	return dailyCategoryChart(m.ds, &dbmodels.ActivityMonitoring{}, req, config.ActivityMonitoringCategories)
}

func (m *ActivityMonitoringModel) LatestChart() (*ChartData, error) {
	return latestDayChart(m.ds, &dbmodels.ActivityMonitoring{}, config.ActivityMonitoringCategories)
}

// Export writes every detection of the period into an xlsx workbook.
func (m *ActivityMonitoringModel) Export(req *ChartReq) (*bytes.Buffer, string, error) {
	filter, stem, err := exportRange(req)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := m.ds.GetActivityMonitorings(filter, 0, -1, "detected_at ASC")
	if err != nil {
		return nil, "", err
	}

	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{
			row.ID, row.PrimaryAnalyticID, row.CctvID, row.Category,
			row.PersonCount, formatExportTime(row.DetectedAt),
		})
	}

	buf, err := exportXlsx("Activity Monitoring",
		[]string{"ID", "Primary Analytic ID", "CCTV ID", "Category", "Person Count", "Detected At"}, data)
	if err != nil {
		return nil, "", err
	}

	return buf, fmt.Sprintf("activity-monitoring_%s.xlsx", stem), nil
}
