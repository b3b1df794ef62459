package dbservice

import (
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

var primaryAnalyticSearchFields = []string{"name"}

func (s *DatabaseService) GetPrimaryAnalytics(offset, limit int, search, order string) ([]dbmodels.PrimaryAnalytic, int64, error) {
	var analytics []dbmodels.PrimaryAnalytic
	var total int64

	scope := utils.SearchScope(search, primaryAnalyticSearchFields)

	var g errgroup.Group
	g.Go(func() error {
		return s.db.Model(&dbmodels.PrimaryAnalytic{}).Scopes(scope).Count(&total).Error
	})
	g.Go(func() error {
		return s.db.Scopes(scope).
			Preload("Server").Preload("TypeAnalytic").Preload("Cctvs").
			Offset(offset).Limit(limit).Order(order).Find(&analytics).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return analytics, total, nil
}

func (s *DatabaseService) GetPrimaryAnalyticByID(id uint64) (*dbmodels.PrimaryAnalytic, error) {
	pa := new(dbmodels.PrimaryAnalytic)

	result := s.db.Preload("Server").Preload("TypeAnalytic").Preload("Cctvs").Take(pa, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return pa, nil
}

func (s *DatabaseService) CreatePrimaryAnalytic(pa *dbmodels.PrimaryAnalytic) error {
	return s.db.Create(pa).Error
}

func (s *DatabaseService) UpdatePrimaryAnalytic(pa *dbmodels.PrimaryAnalytic) error {
	return s.db.Save(pa).Error
}

func (s *DatabaseService) DeletePrimaryAnalytic(pa *dbmodels.PrimaryAnalytic) error {
	if err := s.db.Model(pa).Association("Cctvs").Clear(); err != nil {
		return err
	}
	return s.db.Delete(pa).Error
}

func (s *DatabaseService) ReplacePrimaryAnalyticCctvs(pa *dbmodels.PrimaryAnalytic, cctvs []dbmodels.Cctv) error {
	return s.db.Model(pa).Association("Cctvs").Replace(cctvs)
}

// DeleteResultsByPrimaryAnalytic removes every analytic-result row that
// references the job, across all result tables.
func (s *DatabaseService) DeleteResultsByPrimaryAnalytic(paId uint64) error {
	for _, model := range []interface{}{
		&dbmodels.ActivityMonitoring{},
		&dbmodels.WeaponDetection{},
		&dbmodels.AnimalPopulation{},
		&dbmodels.PpeDetection{},
		&dbmodels.NomorLambung{},
	} {
		if err := s.db.Where("primary_analytic_id = ?", paId).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- polymorphic attachments ---

func (s *DatabaseService) GetModelValues(modelId uint64, modelType string) ([]dbmodels.ModelHasValue, error) {
	var rows []dbmodels.ModelHasValue
	err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Find(&rows).Error
	return rows, err
}

func (s *DatabaseService) GetModelPolygons(modelId uint64, modelType string) ([]dbmodels.ModelHasPolygon, error) {
	var rows []dbmodels.ModelHasPolygon
	err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Find(&rows).Error
	return rows, err
}

func (s *DatabaseService) GetModelEmbeds(modelId uint64, modelType string) ([]dbmodels.ModelHasEmbed, error) {
	var rows []dbmodels.ModelHasEmbed
	err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Find(&rows).Error
	return rows, err
}

// ReplaceModelValues swaps the full value set of the owner.
func (s *DatabaseService) ReplaceModelValues(modelId uint64, modelType string, rows []dbmodels.ModelHasValue) error {
	if err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Delete(&dbmodels.ModelHasValue{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].ModelID = modelId
		rows[i].ModelType = modelType
	}
	return s.db.Create(&rows).Error
}

func (s *DatabaseService) ReplaceModelPolygons(modelId uint64, modelType string, rows []dbmodels.ModelHasPolygon) error {
	if err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Delete(&dbmodels.ModelHasPolygon{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].ModelID = modelId
		rows[i].ModelType = modelType
	}
	return s.db.Create(&rows).Error
}

func (s *DatabaseService) ReplaceModelEmbeds(modelId uint64, modelType string, rows []dbmodels.ModelHasEmbed) error {
	if err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Delete(&dbmodels.ModelHasEmbed{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].ModelID = modelId
		rows[i].ModelType = modelType
	}
	return s.db.Create(&rows).Error
}

// DeleteModelAttachments clears values, polygons and embeds of one
// owner in a single pass.
func (s *DatabaseService) DeleteModelAttachments(modelId uint64, modelType string) error {
	if err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Delete(&dbmodels.ModelHasValue{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Delete(&dbmodels.ModelHasPolygon{}).Error; err != nil {
		return err
	}
	return s.db.Where("model_id = ? AND model_type = ?", modelId, modelType).Delete(&dbmodels.ModelHasEmbed{}).Error
}
