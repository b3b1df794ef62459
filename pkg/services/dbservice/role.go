package dbservice

import (
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

var roleSearchFields = []string{"name"}

func (s *DatabaseService) GetRoles(offset, limit int, search, order string) ([]dbmodels.Role, int64, error) {
	var roles []dbmodels.Role
	var total int64

	scope := utils.SearchScope(search, roleSearchFields)

	var g errgroup.Group
	g.Go(func() error {
		return s.db.Model(&dbmodels.Role{}).Scopes(scope).Count(&total).Error
	})
	g.Go(func() error {
		return s.db.Scopes(scope).Preload("Permissions").
			Offset(offset).Limit(limit).Order(order).Find(&roles).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

func (s *DatabaseService) GetRoleByID(id uint64) (*dbmodels.Role, error) {
	role := new(dbmodels.Role)

	result := s.db.Preload("Permissions").Take(role, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return role, nil
}

// GetRoleByName looks a role up by exact name, skipping excludeId when
// non-zero so updates can check uniqueness against other rows only.
func (s *DatabaseService) GetRoleByName(name string, excludeId uint64) (*dbmodels.Role, error) {
	role := new(dbmodels.Role)

	d := s.db.Where("name = ?", name)
	if excludeId > 0 {
		d = d.Where("id != ?", excludeId)
	}

	result := d.Take(role)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return role, nil
}

func (s *DatabaseService) GetRoleByNameExact(name string) (*dbmodels.Role, error) {
	return s.GetRoleByName(name, 0)
}

func (s *DatabaseService) CreateRole(role *dbmodels.Role) error {
	return s.db.Create(role).Error
}

func (s *DatabaseService) UpdateRole(role *dbmodels.Role) error {
	return s.db.Save(role).Error
}

func (s *DatabaseService) ReplaceRolePermissions(role *dbmodels.Role, perms []dbmodels.Permission) error {
	return s.db.Model(role).Association("Permissions").Replace(perms)
}

func (s *DatabaseService) DeleteRole(role *dbmodels.Role) error {
	if err := s.db.Model(role).Association("Permissions").Clear(); err != nil {
		return err
	}
	return s.db.Delete(role).Error
}

// CountUsersWithRole reports how many users still carry the role.
func (s *DatabaseService) CountUsersWithRole(roleId uint64) (int64, error) {
	var total int64
	err := s.db.Table("user_has_roles").Where("role_id = ?", roleId).Count(&total).Error
	return total, err
}

func (s *DatabaseService) GetPermissionsByIDs(ids []uint64) ([]dbmodels.Permission, error) {
	var perms []dbmodels.Permission
	if len(ids) == 0 {
		return perms, nil
	}
	err := s.db.Where("id IN ?", ids).Find(&perms).Error
	return perms, err
}
