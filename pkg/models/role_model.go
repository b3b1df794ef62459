package models

import (
	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type RoleModel struct {
	app *config.AppConfig
	ds  *dbservice.DatabaseService
}

func NewRoleModel(app *config.AppConfig, ds *dbservice.DatabaseService) *RoleModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}

	return &RoleModel{
		app: app,
		ds:  ds,
	}
}

type RoleReq struct {
	Name          string   `json:"name" validate:"required,min=2,max=125"`
	PermissionIDs []uint64 `json:"permission_ids" validate:"omitempty,dive,min=1"`
}

var roleSortFields = []string{"id", "name", "created_at"}

func (m *RoleModel) List(pq utils.PageQuery, search, sortField, sortDir string) ([]dbmodels.Role, *utils.Pagination, error) {
	sort := utils.ParseSort(sortField, sortDir, roleSortFields, "id", "ASC")

	roles, total, err := m.ds.GetRoles(pq.Offset, pq.Limit, search, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	return roles, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *RoleModel) Get(id uint64) (*dbmodels.Role, error) {
	role, err := m.ds.GetRoleByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrNotFound
	}
	return role, nil
}

func (m *RoleModel) Create(req *RoleReq) (*dbmodels.Role, error) {
	existing, err := m.ds.GetRoleByName(req.Name, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	role := &dbmodels.Role{Name: req.Name}
	if err = m.ds.CreateRole(role); err != nil {
		return nil, err
	}

	if len(req.PermissionIDs) > 0 {
		perms, err := m.ds.GetPermissionsByIDs(req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		if err = m.ds.ReplaceRolePermissions(role, perms); err != nil {
			return nil, err
		}
		role.Permissions = perms
	}

	return role, nil
}

func (m *RoleModel) Update(id uint64, req *RoleReq) (*dbmodels.Role, error) {
	role, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	// uniqueness excluding self
	existing, err := m.ds.GetRoleByName(req.Name, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	role.Name = req.Name
	if err = m.ds.UpdateRole(role); err != nil {
		return nil, err
	}

	if req.PermissionIDs != nil {
		perms, err := m.ds.GetPermissionsByIDs(req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		if err = m.ds.ReplaceRolePermissions(role, perms); err != nil {
			return nil, err
		}
		role.Permissions = perms
	}

	return role, nil
}

// Delete refuses while any user still carries the role.
func (m *RoleModel) Delete(id uint64) error {
	role, err := m.Get(id)
	if err != nil {
		return err
	}

	users, err := m.ds.CountUsersWithRole(id)
	if err != nil {
		return err
	}
	if users > 0 {
		return ErrInUse
	}

	return m.ds.DeleteRole(role)
}
