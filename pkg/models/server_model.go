package models

import (
	"fmt"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type ServerModel struct {
	app *config.AppConfig
	ds  *dbservice.DatabaseService
}

func NewServerModel(app *config.AppConfig, ds *dbservice.DatabaseService) *ServerModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}

	return &ServerModel{
		app: app,
		ds:  ds,
	}
}

type ServerReq struct {
	Name                  string `json:"name" validate:"required,min=2,max=255"`
	Ip                    string `json:"ip" validate:"required,ip"`
	Location              string `json:"location" validate:"omitempty,max=255"`
	Status                string `json:"status" validate:"omitempty,oneof=online offline maintenance"`
	MaxActivityMonitoring int64  `json:"max_activity_monitoring" validate:"omitempty,min=0"`
}

var serverSortFields = []string{"id", "name", "ip", "status", "max_activity_monitoring", "cur_activity_monitoring", "created_at"}

func (m *ServerModel) List(pq utils.PageQuery, search, sortField, sortDir string) ([]dbmodels.Server, *utils.Pagination, error) {
	sort := utils.ParseSort(sortField, sortDir, serverSortFields, "id", "ASC")

	servers, total, err := m.ds.GetServers(pq.Offset, pq.Limit, search, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	return servers, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *ServerModel) Get(id uint64) (*dbmodels.Server, error) {
	server, err := m.ds.GetServerByID(id)
	if err != nil {
		return nil, err
	}
	if server == nil {
		return nil, ErrNotFound
	}
	return server, nil
}

// Create registers a server; cur_activity_monitoring always starts at
// zero regardless of payload.
func (m *ServerModel) Create(req *ServerReq) (*dbmodels.Server, error) {
	existing, err := m.ds.GetServerByIp(req.Ip, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	server := &dbmodels.Server{
		Name:                  req.Name,
		Ip:                    req.Ip,
		Location:              req.Location,
		Status:                req.Status,
		MaxActivityMonitoring: req.MaxActivityMonitoring,
		CurActivityMonitoring: 0,
	}
	if server.Status == "" {
		server.Status = "offline"
	}

	if err = m.ds.CreateServer(server); err != nil {
		return nil, err
	}

	return server, nil
}

func (m *ServerModel) Update(id uint64, req *ServerReq) (*dbmodels.Server, error) {
	server, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	existing, err := m.ds.GetServerByIp(req.Ip, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	if req.MaxActivityMonitoring < server.CurActivityMonitoring {
		return nil, fmt.Errorf("max_activity_monitoring %d is below the %d slots in use: %w",
			req.MaxActivityMonitoring, server.CurActivityMonitoring, ErrInvalidInput)
	}

	server.Name = req.Name
	server.Ip = req.Ip
	server.Location = req.Location
	if req.Status != "" {
		server.Status = req.Status
	}
	server.MaxActivityMonitoring = req.MaxActivityMonitoring

	if err = m.ds.UpdateServer(server); err != nil {
		return nil, err
	}

	return server, nil
}

// Delete refuses while primary analytics are still assigned to the
// server.
func (m *ServerModel) Delete(id uint64) error {
	server, err := m.Get(id)
	if err != nil {
		return err
	}

	attached, err := m.ds.CountPrimaryAnalyticsByServer(id)
	if err != nil {
		return err
	}
	if attached > 0 {
		return ErrInUse
	}

	return m.ds.DeleteServer(server)
}

// ReserveCapacity books n activity-monitoring slots. False means the
// server lacks the capacity; the counter is left untouched.
func (m *ServerModel) ReserveCapacity(serverId uint64, n int64) (bool, error) {
	return m.ds.ReserveActivityMonitoringCapacity(serverId, n)
}

// ReleaseCapacity frees n previously booked slots.
func (m *ServerModel) ReleaseCapacity(serverId uint64, n int64) error {
	return m.ds.ReleaseActivityMonitoringCapacity(serverId, n)
}
