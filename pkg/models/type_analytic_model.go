package models

import (
	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type TypeAnalyticModel struct {
	app *config.AppConfig
	ds  *dbservice.DatabaseService
}

func NewTypeAnalyticModel(app *config.AppConfig, ds *dbservice.DatabaseService) *TypeAnalyticModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}

	return &TypeAnalyticModel{
		app: app,
		ds:  ds,
	}
}

type TypeAnalyticReq struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	Slug string `json:"slug" validate:"required,min=2,max=255"`
}

type SubTypeAnalyticReq struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

var typeAnalyticSortFields = []string{"id", "name", "slug", "created_at"}

func (m *TypeAnalyticModel) List(pq utils.PageQuery, search, sortField, sortDir string) ([]dbmodels.TypeAnalytic, *utils.Pagination, error) {
	sort := utils.ParseSort(sortField, sortDir, typeAnalyticSortFields, "id", "ASC")

	types, total, err := m.ds.GetTypeAnalytics(pq.Offset, pq.Limit, search, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	return types, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *TypeAnalyticModel) Get(id int64) (*dbmodels.TypeAnalytic, error) {
	t, err := m.ds.GetTypeAnalyticByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (m *TypeAnalyticModel) Create(req *TypeAnalyticReq) (*dbmodels.TypeAnalytic, error) {
	existing, err := m.ds.GetTypeAnalyticByName(req.Name, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	t := &dbmodels.TypeAnalytic{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err = m.ds.CreateTypeAnalytic(t); err != nil {
		return nil, err
	}

	return t, nil
}

func (m *TypeAnalyticModel) Update(id int64, req *TypeAnalyticReq) (*dbmodels.TypeAnalytic, error) {
	t, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	existing, err := m.ds.GetTypeAnalyticByName(req.Name, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	t.Name = req.Name
	t.Slug = req.Slug
	if err = m.ds.UpdateTypeAnalytic(t); err != nil {
		return nil, err
	}

	return t, nil
}

// Delete refuses while primary analytics still use the type.
func (m *TypeAnalyticModel) Delete(id int64) error {
	t, err := m.Get(id)
	if err != nil {
		return err
	}

	used, err := m.ds.CountPrimaryAnalyticsByType(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrInUse
	}

	return m.ds.DeleteTypeAnalytic(t)
}

func (m *TypeAnalyticModel) CreateSubType(typeId int64, req *SubTypeAnalyticReq) (*dbmodels.SubTypeAnalytic, error) {
	if _, err := m.Get(typeId); err != nil {
		return nil, err
	}

	st := &dbmodels.SubTypeAnalytic{
		TypeAnalyticID: typeId,
		Name:           req.Name,
	}
	if err := m.ds.CreateSubTypeAnalytic(st); err != nil {
		return nil, err
	}

	return st, nil
}

func (m *TypeAnalyticModel) UpdateSubType(id int64, req *SubTypeAnalyticReq) (*dbmodels.SubTypeAnalytic, error) {
	st, err := m.ds.GetSubTypeAnalyticByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}

	st.Name = req.Name
	if err = m.ds.UpdateSubTypeAnalytic(st); err != nil {
		return nil, err
	}

	return st, nil
}

func (m *TypeAnalyticModel) DeleteSubType(id int64) error {
	st, err := m.ds.GetSubTypeAnalyticByID(id)
	if err != nil {
		return err
	}
	if st == nil {
		return ErrNotFound
	}

	return m.ds.DeleteSubTypeAnalytic(st)
}
