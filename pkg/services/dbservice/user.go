package dbservice

import (
	"errors"

	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

func (s *DatabaseService) GetUserByID(id uint64) (*dbmodels.User, error) {
	user := new(dbmodels.User)

	result := s.db.Preload("Roles").Take(user, id)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return user, nil
}

func (s *DatabaseService) GetUserByEmail(email string) (*dbmodels.User, error) {
	user := new(dbmodels.User)

	result := s.db.Preload("Roles").Where("email = ?", email).Take(user)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return user, nil
}

func (s *DatabaseService) CreateUser(user *dbmodels.User) error {
	return s.db.Create(user).Error
}

func (s *DatabaseService) ReplaceUserRoles(user *dbmodels.User, roles []dbmodels.Role) error {
	return s.db.Model(user).Association("Roles").Replace(roles)
}
