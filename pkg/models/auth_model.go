package models

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
)

type AuthModel struct {
	app *config.AppConfig
	ds  *dbservice.DatabaseService
}

func NewAuthModel(app *config.AppConfig, ds *dbservice.DatabaseService) *AuthModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}

	return &AuthModel{
		app: app,
		ds:  ds,
	}
}

type RegisterReq struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	RoleID   uint64 `json:"role_id" validate:"omitempty,min=1"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a user with a hashed password. A duplicate email
// returns ErrDuplicate.
func (m *AuthModel) Register(req *RegisterReq) (*dbmodels.User, error) {
	existing, err := m.ds.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	var role *dbmodels.Role
	if req.RoleID > 0 {
		if role, err = m.ds.GetRoleByID(req.RoleID); err != nil {
			return nil, err
		}
		if role == nil {
			return nil, fmt.Errorf("role %d: %w", req.RoleID, ErrNotFound)
		}
	} else {
		// fall back to the default role when it has been seeded
		if role, err = m.ds.GetRoleByNameExact(config.DefaultUserRoleName); err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &dbmodels.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err = m.ds.CreateUser(user); err != nil {
		return nil, err
	}

	if role != nil {
		if err = m.ds.ReplaceUserRoles(user, []dbmodels.Role{*role}); err != nil {
			return nil, err
		}
		user.Roles = []dbmodels.Role{*role}
	}

	return user, nil
}

// Login verifies the credentials and issues a session token.
func (m *AuthModel) Login(req *LoginReq) (string, *dbmodels.User, error) {
	user, err := m.ds.GetUserByEmail(req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := m.GenerateAuthToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GetUser loads a user with the roles attached.
func (m *AuthModel) GetUser(id uint64) (*dbmodels.User, error) {
	user, err := m.ds.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
