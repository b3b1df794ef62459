package dbservice

import (
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

var serverSearchFields = []string{"name", "ip", "location"}

func (s *DatabaseService) GetServers(offset, limit int, search, order string) ([]dbmodels.Server, int64, error) {
	var servers []dbmodels.Server
	var total int64

	scope := utils.SearchScope(search, serverSearchFields)

	var g errgroup.Group
	g.Go(func() error {
		return s.db.Model(&dbmodels.Server{}).Scopes(scope).Count(&total).Error
	})
	g.Go(func() error {
		return s.db.Scopes(scope).Offset(offset).Limit(limit).Order(order).Find(&servers).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return servers, total, nil
}

// GetAllServers returns every server row, used by the auto-selection
// scan.
func (s *DatabaseService) GetAllServers() ([]dbmodels.Server, error) {
	var servers []dbmodels.Server
	if err := s.db.Find(&servers).Error; err != nil {
		return nil, err
	}
	return servers, nil
}

func (s *DatabaseService) GetServerByID(id uint64) (*dbmodels.Server, error) {
	server := new(dbmodels.Server)

	result := s.db.Take(server, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return server, nil
}

func (s *DatabaseService) GetServerByIp(ip string, excludeId uint64) (*dbmodels.Server, error) {
	server := new(dbmodels.Server)

	d := s.db.Where("ip = ?", ip)
	if excludeId > 0 {
		d = d.Where("id != ?", excludeId)
	}

	result := d.Take(server)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return server, nil
}

func (s *DatabaseService) CreateServer(server *dbmodels.Server) error {
	return s.db.Create(server).Error
}

func (s *DatabaseService) UpdateServer(server *dbmodels.Server) error {
	return s.db.Save(server).Error
}

func (s *DatabaseService) DeleteServer(server *dbmodels.Server) error {
	return s.db.Delete(server).Error
}

func (s *DatabaseService) CountPrimaryAnalyticsByServer(serverId uint64) (int64, error) {
	var total int64
	err := s.db.Model(&dbmodels.PrimaryAnalytic{}).Where("server_id = ?", serverId).Count(&total).Error
	return total, err
}

// ReserveActivityMonitoringCapacity bumps cur_activity_monitoring by n
// in a single conditional update so concurrent reservations cannot
// overshoot max. Returns false when the server lacks the capacity.
func (s *DatabaseService) ReserveActivityMonitoringCapacity(serverId uint64, n int64) (bool, error) {
	result := s.db.Model(&dbmodels.Server{}).
		Where("id = ? AND cur_activity_monitoring + ? <= max_activity_monitoring", serverId, n).
		Update("cur_activity_monitoring", gorm.Expr("cur_activity_monitoring + ?", n))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// ReleaseActivityMonitoringCapacity is the symmetric decrement, clamped
// so the counter never goes below zero.
func (s *DatabaseService) ReleaseActivityMonitoringCapacity(serverId uint64, n int64) error {
	return s.db.Model(&dbmodels.Server{}).
		Where("id = ? AND cur_activity_monitoring - ? >= 0", serverId, n).
		Update("cur_activity_monitoring", gorm.Expr("cur_activity_monitoring - ?", n)).Error
}
