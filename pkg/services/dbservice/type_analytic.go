package dbservice

import (
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

var typeAnalyticSearchFields = []string{"name", "slug"}

func (s *DatabaseService) GetTypeAnalytics(offset, limit int, search, order string) ([]dbmodels.TypeAnalytic, int64, error) {
	var types []dbmodels.TypeAnalytic
	var total int64

	scope := utils.SearchScope(search, typeAnalyticSearchFields)

	var g errgroup.Group
	g.Go(func() error {
		return s.db.Model(&dbmodels.TypeAnalytic{}).Scopes(scope).Count(&total).Error
	})
	g.Go(func() error {
		return s.db.Scopes(scope).Preload("SubTypes").
			Offset(offset).Limit(limit).Order(order).Find(&types).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return types, total, nil
}

func (s *DatabaseService) GetTypeAnalyticByID(id int64) (*dbmodels.TypeAnalytic, error) {
	t := new(dbmodels.TypeAnalytic)

	result := s.db.Preload("SubTypes").Take(t, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return t, nil
}

func (s *DatabaseService) GetTypeAnalyticByName(name string, excludeId int64) (*dbmodels.TypeAnalytic, error) {
	t := new(dbmodels.TypeAnalytic)

	d := s.db.Where("name = ?", name)
	if excludeId > 0 {
		d = d.Where("id != ?", excludeId)
	}

	result := d.Take(t)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return t, nil
}

func (s *DatabaseService) CreateTypeAnalytic(t *dbmodels.TypeAnalytic) error {
	return s.db.Create(t).Error
}

func (s *DatabaseService) UpdateTypeAnalytic(t *dbmodels.TypeAnalytic) error {
	return s.db.Save(t).Error
}

func (s *DatabaseService) DeleteTypeAnalytic(t *dbmodels.TypeAnalytic) error {
	if err := s.db.Where("type_analytic_id = ?", t.ID).Delete(&dbmodels.SubTypeAnalytic{}).Error; err != nil {
		return err
	}
	return s.db.Delete(t).Error
}

func (s *DatabaseService) CountPrimaryAnalyticsByType(typeId int64) (int64, error) {
	var total int64
	err := s.db.Model(&dbmodels.PrimaryAnalytic{}).Where("type_analytic_id = ?", typeId).Count(&total).Error
	return total, err
}

func (s *DatabaseService) GetSubTypeAnalyticByID(id int64) (*dbmodels.SubTypeAnalytic, error) {
	st := new(dbmodels.SubTypeAnalytic)

	result := s.db.Take(st, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return st, nil
}

func (s *DatabaseService) CreateSubTypeAnalytic(st *dbmodels.SubTypeAnalytic) error {
	return s.db.Create(st).Error
}

func (s *DatabaseService) UpdateSubTypeAnalytic(st *dbmodels.SubTypeAnalytic) error {
	return s.db.Save(st).Error
}

func (s *DatabaseService) DeleteSubTypeAnalytic(st *dbmodels.SubTypeAnalytic) error {
	return s.db.Delete(st).Error
}
