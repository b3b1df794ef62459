package models

import (
	"bytes"
	"fmt"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type AnimalPopulationModel struct {
	app *config.AppConfig
	ds  *dbservice.DatabaseService
}

func NewAnimalPopulationModel(app *config.AppConfig, ds *dbservice.DatabaseService) *AnimalPopulationModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}

	return &AnimalPopulationModel{
		app: app,
		ds:  ds,
	}
}

type AnimalPopulationReq struct {
	PrimaryAnalyticID uint64 `json:"primary_analytic_id" validate:"required,min=1"`
	CctvID            uint64 `json:"cctv_id" validate:"required,min=1"`
	Category          string `json:"category" validate:"required,max=50"`
	Count             int64  `json:"count" validate:"min=0"`
	DetectedAt        string `json:"detected_at" validate:"omitempty"`
}

func (m *AnimalPopulationModel) List(req *DetectionListReq, pq utils.PageQuery, sortField, sortDir string) ([]dbmodels.AnimalPopulation, *utils.Pagination, error) {
	filter, err := req.filter()
	if err != nil {
		return nil, nil, err
	}
	sort := utils.ParseSort(sortField, sortDir, detectionSortFields, "detected_at", "DESC")

	rows, total, err := m.ds.GetAnimalPopulations(filter, pq.Offset, pq.Limit, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	return rows, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *AnimalPopulationModel) Get(id uint64) (*dbmodels.AnimalPopulation, error) {
	row, err := m.ds.GetAnimalPopulationByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

func (m *AnimalPopulationModel) Create(req *AnimalPopulationReq) (*dbmodels.AnimalPopulation, error) {
	if !categoryAllowed(req.Category, config.AnimalPopulationCategories) {
		return nil, fmt.Errorf("category %q: %w", req.Category, ErrInvalidInput)
	}
	if err := verifyDetectionRefs(m.ds, req.PrimaryAnalyticID, req.CctvID); err != nil {
		return nil, err
	}

	detectedAt, err := parseDetectedAt(req.DetectedAt)
	if err != nil {
		return nil, err
	}

	row := &dbmodels.AnimalPopulation{
		PrimaryAnalyticID: req.PrimaryAnalyticID,
		CctvID:            req.CctvID,
		Category:          req.Category,
		Count:             req.Count,
		DetectedAt:        detectedAt,
	}
	if err := m.ds.CreateAnimalPopulation(row); err != nil {
		return nil, err
	}

	return row, nil
}

func (m *AnimalPopulationModel) Delete(id uint64) error {
	row, err := m.ds.GetAnimalPopulationByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	return m.ds.DeleteAnimalPopulation(row)
}

func (m *AnimalPopulationModel) DailyChart(req *ChartReq) (*ChartData, error) {
	return dailyCategoryChart(m.ds, &dbmodels.AnimalPopulation{}, req, config.AnimalPopulationCategories)
}

func (m *AnimalPopulationModel) LatestChart() (*ChartData, error) {
	return latestDayChart(m.ds, &dbmodels.AnimalPopulation{}, config.AnimalPopulationCategories)
}

func (m *AnimalPopulationModel) Export(req *ChartReq) (*bytes.Buffer, string, error) {
	filter, stem, err := exportRange(req)
	if err != nil {
		return nil, "", err
	}

	rows, _, err := m.ds.GetAnimalPopulations(filter, 0, -1, "detected_at ASC")
	if err != nil {
		return nil, "", err
	}

	data := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		data = append(data, []interface{}{
			row.ID, row.PrimaryAnalyticID, row.CctvID, row.Category,
			row.Count, formatExportTime(row.DetectedAt),
		})
	}

	buf, err := exportXlsx("Animal Population",
		[]string{"ID", "Primary Analytic ID", "CCTV ID", "Category", "Count", "Detected At"}, data)
	if err != nil {
		return nil, "", err
	}

	return buf, fmt.Sprintf("animal-population_%s.xlsx", stem), nil
}
