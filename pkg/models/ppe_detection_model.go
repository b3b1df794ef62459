package models

import (
	"bytes"
	"fmt"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type PpeDetectionModel struct {
	app *config.AppConfig
	ds  *dbservice.DatabaseService
}

func NewPpeDetectionModel(app *config.AppConfig, ds *dbservice.DatabaseService) *PpeDetectionModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}

	return &PpeDetectionModel{
		app: app,
		ds:  ds,
	}
}

type PpeDetectionReq struct {
	PrimaryAnalyticID uint64 `json:"primary_analytic_id" validate:"required,min=1"`
	CctvID            uint64 `json:"cctv_id" validate:"required,min=1"`
	Category          string `json:"category" validate:"required,max=50"`
	DetectedAt        string `json:"detected_at" validate:"omitempty"`
}

func (m *PpeDetectionModel) List(req *DetectionListReq, pq utils.PageQuery, sortField, sortDir string) ([]dbmodels.PpeDetection, *utils.Pagination, error) {
	filter, err := req.filter()
	if err != nil {
		return nil, nil, err
	}
	sort := utils.ParseSort(sortField, sortDir, detectionSortFields, "detected_at", "DESC")

	rows, total, err := m.ds.GetPpeDetections(filter, pq.Offset, pq.Limit, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	return rows, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *PpeDetectionModel) Get(id uint64) (*dbmodels.PpeDetection, error) {
	row, err := m.ds.GetPpeDetectionByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

func (m *PpeDetectionModel) Create(req *PpeDetectionReq) (*dbmodels.PpeDetection, error) {
	if !categoryAllowed(req.Category, config.PpeDetectionCategories) {
		return nil, fmt.Errorf("category %q: %w", req.Category, ErrInvalidInput)
	}
	if err := verifyDetectionRefs(m.ds, req.PrimaryAnalyticID, req.CctvID); err != nil {
		return nil, err
	}

	detectedAt, err := parseDetectedAt(req.DetectedAt)
	if err != nil {
		return nil, err
	}

	row := &dbmodels.PpeDetection{
		PrimaryAnalyticID: req.PrimaryAnalyticID,
		CctvID:            req.CctvID,
		Category:          req.Category,
		DetectedAt:        detectedAt,
	}
	if err := m.ds.CreatePpeDetection(row); err != nil {
		return nil, err
	}

	return row, nil
}

func (m *PpeDetectionModel) Delete(id uint64) error {
	row, err := m.ds.GetPpeDetectionByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	return m.ds.DeletePpeDetection(row)
}

func (m *PpeDetectionModel) DailyChart(req *ChartReq) (*ChartData, error) {
	return dailyCategoryChart(m.ds, &dbmodels.PpeDetection{}, req, config.PpeDetectionCategories)
}

func (m *PpeDetectionModel) LatestChart() (*ChartData, error) {
	return latestDayChart(m.ds, &dbmodels.PpeDetection{}, config.PpeDetectionCategories)
}

func (m *PpeDetectionModel) Export(req *ChartReq) (*bytes.Buffer, string, error) {
	filter, stem, err := exportRange(req)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := m.ds.GetPpeDetections(filter, 0, -1, "detected_at ASC")
	if err != nil {
		return nil, "", err
	}

	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{
			row.ID, row.PrimaryAnalyticID, row.CctvID, row.Category,
			formatExportTime(row.DetectedAt),
		})
	}

	buf, err := exportXlsx("PPE Detection",
		[]string{"ID", "Primary Analytic ID", "CCTV ID", "Category", "Detected At"}, data)
	if err != nil {
		return nil, "", err
	}

	return buf, fmt.Sprintf("ppe-detection_%s.xlsx", stem), nil
}
