package dbservice

import (
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

var cctvSearchFields = []string{"name", "ip_address", "location"}

func (s *DatabaseService) GetCctvs(offset, limit int, search, order string) ([]dbmodels.Cctv, int64, error) {
	var cctvs []dbmodels.Cctv
	var total int64

	scope := utils.SearchScope(search, cctvSearchFields)

	var g errgroup.Group
	g.Go(func() error {
		return s.db.Model(&dbmodels.Cctv{}).Scopes(scope).Count(&total).Error
	})
	g.Go(func() error {
		return s.db.Scopes(scope).Offset(offset).Limit(limit).Order(order).Find(&cctvs).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return cctvs, total, nil
}

func (s *DatabaseService) GetCctvByID(id uint64) (*dbmodels.Cctv, error) {
	cctv := new(dbmodels.Cctv)

	result := s.db.Take(cctv, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return cctv, nil
}

func (s *DatabaseService) GetCctvsByIDs(ids []uint64) ([]dbmodels.Cctv, error) {
	var cctvs []dbmodels.Cctv
	if len(ids) == 0 {
		return cctvs, nil
	}
	err := s.db.Where("id IN ?", ids).Find(&cctvs).Error
	return cctvs, err
}

func (s *DatabaseService) GetCctvByIpAddress(ip string, excludeId uint64) (*dbmodels.Cctv, error) {
	cctv := new(dbmodels.Cctv)

	d := s.db.Where("ip_address = ?", ip)
	if excludeId > 0 {
		d = d.Where("id != ?", excludeId)
	}

	result := d.Take(cctv)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return cctv, nil
}

func (s *DatabaseService) CreateCctv(cctv *dbmodels.Cctv) error {
	return s.db.Create(cctv).Error
}

func (s *DatabaseService) UpdateCctv(cctv *dbmodels.Cctv) error {
	return s.db.Save(cctv).Error
}

func (s *DatabaseService) DeleteCctv(cctv *dbmodels.Cctv) error {
	return s.db.Delete(cctv).Error
}

// CountPrimaryAnalyticsByCctv reports how many analytic jobs still
// reference the camera through the join table.
func (s *DatabaseService) CountPrimaryAnalyticsByCctv(cctvId uint64) (int64, error) {
	var total int64
	err := s.db.Table("primary_analytic_cctvs").Where("cctv_id = ?", cctvId).Count(&total).Error
	return total, err
}
