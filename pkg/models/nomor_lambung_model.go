package models

import (
	"bytes"
	"fmt"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type NomorLambungModel struct {
	app *config.AppConfig
	ds  *dbservice.DatabaseService
}

func NewNomorLambungModel(app *config.AppConfig, ds *dbservice.DatabaseService) *NomorLambungModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}

	return &NomorLambungModel{
		app: app,
		ds:  ds,
	}
}

type NomorLambungReq struct {
	PrimaryAnalyticID uint64 `json:"primary_analytic_id" validate:"required,min=1"`
	CctvID            uint64 `json:"cctv_id" validate:"required,min=1"`
	Category          string `json:"category" validate:"required,max=50"`
	PlateNumber       string `json:"plate_number" validate:"omitempty,max=50"`
	DetectedAt        string `json:"detected_at" validate:"omitempty"`
}

func (m *NomorLambungModel) List(req *DetectionListReq, pq utils.PageQuery, sortField, sortDir string) ([]dbmodels.NomorLambung, *utils.Pagination, error) {
	filter, err := req.filter()
	if err != nil {
		return nil, nil, err
	}
	sort := utils.ParseSort(sortField, sortDir, detectionSortFields, "detected_at", "DESC")

	rows, total, err := m.ds.GetNomorLambungs(filter, pq.Offset, pq.Limit, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	return rows, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *NomorLambungModel) Get(id uint64) (*dbmodels.NomorLambung, error) {
	row, err := m.ds.GetNomorLambungByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

// Create ingests one hull-number reading. A readable reading must carry
// the recognized plate number.
func (m *NomorLambungModel) Create(req *NomorLambungReq) (*dbmodels.NomorLambung, error) {
	if !categoryAllowed(req.Category, config.NomorLambungCategories) {
		return nil, fmt.Errorf("category %q: %w", req.Category, ErrInvalidInput)
	}
	if req.Category == "readable" && req.PlateNumber == "" {
		return nil, fmt.Errorf("plate_number is required for readable readings: %w", ErrInvalidInput)
	}
	if err := verifyDetectionRefs(m.ds, req.PrimaryAnalyticID, req.CctvID); err != nil {
		return nil, err
	}

	detectedAt, err := parseDetectedAt(req.DetectedAt)
	if err != nil {
		return nil, err
	}

	row := &dbmodels.NomorLambung{
		PrimaryAnalyticID: req.PrimaryAnalyticID,
		CctvID:            req.CctvID,
		Category:          req.Category,
		PlateNumber:       req.PlateNumber,
		DetectedAt:        detectedAt,
	}
	if err := m.ds.CreateNomorLambung(row); err != nil {
		return nil, err
	}

	return row, nil
}

func (m *NomorLambungModel) Delete(id uint64) error {
	row, err := m.ds.GetNomorLambungByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	return m.ds.DeleteNomorLambung(row)
}

func (m *NomorLambungModel) DailyChart(req *ChartReq) (*ChartData, error) {
	return dailyCategoryChart(m.ds, &dbmodels.NomorLambung{}, req, config.NomorLambungCategories)
}

func (m *NomorLambungModel) LatestChart() (*ChartData, error) {
	return latestDayChart(m.ds, &dbmodels.NomorLambung{}, config.NomorLambungCategories)
}

func (m *NomorLambungModel) Export(req *ChartReq) (*bytes.Buffer, string, error) {
	filter, stem, err := exportRange(req)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := m.ds.GetNomorLambungs(filter, 0, -1, "detected_at ASC")
	if err != nil {
		return nil, "", err
	}

	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{
			row.ID, row.PrimaryAnalyticID, row.CctvID, row.Category,
			row.PlateNumber, formatExportTime(row.DetectedAt),
		})
	}

	buf, err := exportXlsx("Nomor Lambung",
		[]string{"ID", "Primary Analytic ID", "CCTV ID", "Category", "Plate Number", "Detected At"}, data)
	if err != nil {
		return nil, "", err
	}

	return buf, fmt.Sprintf("nomor-lambung_%s.xlsx", stem), nil
}
