package dbservice

import (
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

// DetectionFilter narrows analytic-result listings. Zero values are
// skipped.
type DetectionFilter struct {
	PrimaryAnalyticID uint64
	CctvID            uint64
	Category          string
	From              *time.Time
	To                *time.Time
}

func (f *DetectionFilter) apply(db *gorm.DB) *gorm.DB {
	if f == nil {
		return db
	}
	if f.PrimaryAnalyticID > 0 {
		db = db.Where("primary_analytic_id = ?", f.PrimaryAnalyticID)
	}
	if f.CctvID > 0 {
		db = db.Where("cctv_id = ?", f.CctvID)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.From != nil {
		db = db.Where("detected_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		db = db.Where("detected_at < ?", f.To.UTC())
	}
	return db
}

// listDetections pages any of the result tables into dest, which must
// be a pointer to a slice of the matching dbmodels type.
func (s *DatabaseService) listDetections(model, dest interface{}, filter *DetectionFilter, offset, limit int, order string) (int64, error) {
	var total int64

	var g errgroup.Group
	g.Go(func() error {
		return filter.apply(s.db.Model(model)).Count(&total).Error
	})
	g.Go(func() error {
		return filter.apply(s.db.Model(model)).
			Offset(offset).Limit(limit).Order(order).Find(dest).Error
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return total, nil
}

func (s *DatabaseService) GetActivityMonitorings(filter *DetectionFilter, offset, limit int, order string) ([]dbmodels.ActivityMonitoring, int64, error) {
	var rows []dbmodels.ActivityMonitoring
	total, err := s.listDetections(&dbmodels.ActivityMonitoring{}, &rows, filter, offset, limit, order)
	return rows, total, err
}

func (s *DatabaseService) GetActivityMonitoringByID(id uint64) (*dbmodels.ActivityMonitoring, error) {
	row := new(dbmodels.ActivityMonitoring)

	result := s.db.Take(row, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return row, nil
}

func (s *DatabaseService) CreateActivityMonitoring(row *dbmodels.ActivityMonitoring) error {
	return s.db.Create(row).Error
}

func (s *DatabaseService) DeleteActivityMonitoring(row *dbmodels.ActivityMonitoring) error {
	return s.db.Delete(row).Error
}

func (s *DatabaseService) GetWeaponDetections(filter *DetectionFilter, offset, limit int, order string) ([]dbmodels.WeaponDetection, int64, error) {
	var rows []dbmodels.WeaponDetection
	total, err := s.listDetections(&dbmodels.WeaponDetection{}, &rows, filter, offset, limit, order)
	return rows, total, err
}

func (s *DatabaseService) GetWeaponDetectionByID(id uint64) (*dbmodels.WeaponDetection, error) {
	row := new(dbmodels.WeaponDetection)

	result := s.db.Take(row, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return row, nil
}

func (s *DatabaseService) CreateWeaponDetection(row *dbmodels.WeaponDetection) error {
	return s.db.Create(row).Error
}

func (s *DatabaseService) DeleteWeaponDetection(row *dbmodels.WeaponDetection) error {
	return s.db.Delete(row).Error
}

func (s *DatabaseService) GetAnimalPopulations(filter *DetectionFilter, offset, limit int, order string) ([]dbmodels.AnimalPopulation, int64, error) {
	var rows []dbmodels.AnimalPopulation
	total, err := s.listDetections(&dbmodels.AnimalPopulation{}, &rows, filter, offset, limit, order)
	return rows, total, err
}

func (s *DatabaseService) GetAnimalPopulationByID(id uint64) (*dbmodels.AnimalPopulation, error) {
	row := new(dbmodels.AnimalPopulation)

	result := s.db.Take(row, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return row, nil
}

func (s *DatabaseService) CreateAnimalPopulation(row *dbmodels.AnimalPopulation) error {
	return s.db.Create(row).Error
}

func (s *DatabaseService) DeleteAnimalPopulation(row *dbmodels.AnimalPopulation) error {
	return s.db.Delete(row).Error
}

func (s *DatabaseService) GetPpeDetections(filter *DetectionFilter, offset, limit int, order string) ([]dbmodels.PpeDetection, int64, error) {
	var rows []dbmodels.PpeDetection
	total, err := s.listDetections(&dbmodels.PpeDetection{}, &rows, filter, offset, limit, order)
	return rows, total, err
}

func (s *DatabaseService) GetPpeDetectionByID(id uint64) (*dbmodels.PpeDetection, error) {
	row := new(dbmodels.PpeDetection)

	result := s.db.Take(row, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return row, nil
}

func (s *DatabaseService) CreatePpeDetection(row *dbmodels.PpeDetection) error {
	return s.db.Create(row).Error
}

func (s *DatabaseService) DeletePpeDetection(row *dbmodels.PpeDetection) error {
	return s.db.Delete(row).Error
}

func (s *DatabaseService) GetNomorLambungs(filter *DetectionFilter, offset, limit int, order string) ([]dbmodels.NomorLambung, int64, error) {
	var rows []dbmodels.NomorLambung
	total, err := s.listDetections(&dbmodels.NomorLambung{}, &rows, filter, offset, limit, order)
	return rows, total, err
}

func (s *DatabaseService) GetNomorLambungByID(id uint64) (*dbmodels.NomorLambung, error) {
	row := new(dbmodels.NomorLambung)

	result := s.db.Take(row, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return row, nil
}

func (s *DatabaseService) CreateNomorLambung(row *dbmodels.NomorLambung) error {
	return s.db.Create(row).Error
}

func (s *DatabaseService) DeleteNomorLambung(row *dbmodels.NomorLambung) error {
	return s.db.Delete(row).Error
}
