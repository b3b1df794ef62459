package models

import (
	"fmt"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type PrimaryAnalyticModel struct {
	app         *config.AppConfig
	ds          *dbservice.DatabaseService
	serverModel *ServerModel
}

func NewPrimaryAnalyticModel(app *config.AppConfig, ds *dbservice.DatabaseService, serverModel *ServerModel) *PrimaryAnalyticModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if serverModel == nil {
		serverModel = NewServerModel(app, ds)
	}

	return &PrimaryAnalyticModel{
		app:         app,
		ds:          ds,
		serverModel: serverModel,
	}
}

type AnalyticValueReq struct {
	Key       string `json:"key" validate:"required,max=125"`
	Value     string `json:"value"`
	ValueType string `json:"value_type" validate:"omitempty,oneof=string number boolean json"`
}

type AnalyticPolygonReq struct {
	Name   string `json:"name" validate:"omitempty,max=125"`
	Points string `json:"points" validate:"required,json"`
}

type AnalyticEmbedReq struct {
	Label    string `json:"label" validate:"omitempty,max=125"`
	EmbedUrl string `json:"embed_url" validate:"required,url,max=500"`
}

type PrimaryAnalyticReq struct {
	Name              string               `json:"name" validate:"required,min=2,max=255"`
	ServerID          uint64               `json:"server_id" validate:"omitempty,min=1"`
	TypeAnalyticID    int64                `json:"type_analytic_id" validate:"required,min=1"`
	SubTypeAnalyticID *int64               `json:"sub_type_analytic_id" validate:"omitempty,min=1"`
	IsActive          *int                 `json:"is_active" validate:"omitempty,oneof=0 1"`
	CctvIDs           []uint64             `json:"cctv_ids" validate:"required,min=1,dive,min=1"`
	Values            []AnalyticValueReq   `json:"values" validate:"omitempty,dive"`
	Polygons          []AnalyticPolygonReq `json:"polygons" validate:"omitempty,dive"`
	Embeds            []AnalyticEmbedReq   `json:"embeds" validate:"omitempty,dive"`
}

// PrimaryAnalyticRes bundles the row with its polymorphic attachments.
type PrimaryAnalyticRes struct {
	dbmodels.PrimaryAnalytic
	Values   []dbmodels.ModelHasValue   `json:"values"`
	Polygons []dbmodels.ModelHasPolygon `json:"polygons"`
	Embeds   []dbmodels.ModelHasEmbed   `json:"embeds"`
}

var primaryAnalyticSortFields = []string{"id", "name", "server_id", "type_analytic_id", "is_active", "created_at"}

func needsCapacity(typeAnalyticId int64) bool {
	return typeAnalyticId == config.TypeAnalyticActivityMonitoring ||
		typeAnalyticId == config.TypeAnalyticCustomerService
}

func (m *PrimaryAnalyticModel) List(pq utils.PageQuery, search, sortField, sortDir string) ([]dbmodels.PrimaryAnalytic, *utils.Pagination, error) {
	sort := utils.ParseSort(sortField, sortDir, primaryAnalyticSortFields, "id", "ASC")

	analytics, total, err := m.ds.GetPrimaryAnalytics(pq.Offset, pq.Limit, search, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	return analytics, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *PrimaryAnalyticModel) Get(id uint64) (*PrimaryAnalyticRes, error) {
	pa, err := m.ds.GetPrimaryAnalyticByID(id)
	if err != nil {
		return nil, err
	}
	if pa == nil {
		return nil, ErrNotFound
	}

	res := &PrimaryAnalyticRes{PrimaryAnalytic: *pa}
	if res.Values, err = m.ds.GetModelValues(id, dbmodels.ModelTypePrimaryAnalytic); err != nil {
		return nil, err
	}
	if res.Polygons, err = m.ds.GetModelPolygons(id, dbmodels.ModelTypePrimaryAnalytic); err != nil {
		return nil, err
	}
	if res.Embeds, err = m.ds.GetModelEmbeds(id, dbmodels.ModelTypePrimaryAnalytic); err != nil {
		return nil, err
	}

	return res, nil
}

// Create resolves the target server (explicit server_id or capacity
// auto-selection), then writes the row, the cctv links, the polymorphic
// attachments and the capacity reservation in one transaction so a
// failure anywhere leaves nothing behind.
func (m *PrimaryAnalyticModel) Create(req *PrimaryAnalyticReq) (*PrimaryAnalyticRes, error) {
	if t, err := m.ds.GetTypeAnalyticByID(req.TypeAnalyticID); err != nil {
		return nil, err
	} else if t == nil {
		return nil, fmt.Errorf("type analytic %d: %w", req.TypeAnalyticID, ErrNotFound)
	}

	cctvs, err := m.resolveCctvs(req.CctvIDs)
	if err != nil {
		return nil, err
	}

	serverId := req.ServerID
	if serverId == 0 {
		server, err := m.serverModel.SelectServer(req.TypeAnalyticID, 1, nil)
		if err != nil {
			return nil, err
		}
		serverId = server.ID
	} else if s, err := m.ds.GetServerByID(serverId); err != nil {
		return nil, err
	} else if s == nil {
		return nil, fmt.Errorf("server %d: %w", serverId, ErrNotFound)
	}

	pa := &dbmodels.PrimaryAnalytic{
		Name:              req.Name,
		ServerID:          serverId,
		TypeAnalyticID:    req.TypeAnalyticID,
		SubTypeAnalyticID: req.SubTypeAnalyticID,
		IsActive:          1,
	}
	if req.IsActive != nil {
		pa.IsActive = *req.IsActive
	}

	err = m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		if needsCapacity(req.TypeAnalyticID) {
			ok, err := tx.ReserveActivityMonitoringCapacity(serverId, 1)
			if err != nil {
				return err
			}
			if !ok {
				return ErrNoCapacity
			}
		}

		if err := tx.CreatePrimaryAnalytic(pa); err != nil {
			return err
		}
		if err := tx.ReplacePrimaryAnalyticCctvs(pa, cctvs); err != nil {
			return err
		}
		return m.writeAttachments(tx, pa.ID, req)
	})
	if err != nil {
		return nil, err
	}

	return m.Get(pa.ID)
}

// Update re-validates and moves the job between servers when needed;
// capacity release on the old server and reservation on the new one
// happen inside the same transaction as the row update.
func (m *PrimaryAnalyticModel) Update(id uint64, req *PrimaryAnalyticReq) (*PrimaryAnalyticRes, error) {
	pa, err := m.ds.GetPrimaryAnalyticByID(id)
	if err != nil {
		return nil, err
	}
	if pa == nil {
		return nil, ErrNotFound
	}

	if t, err := m.ds.GetTypeAnalyticByID(req.TypeAnalyticID); err != nil {
		return nil, err
	} else if t == nil {
		return nil, fmt.Errorf("type analytic %d: %w", req.TypeAnalyticID, ErrNotFound)
	}

	cctvs, err := m.resolveCctvs(req.CctvIDs)
	if err != nil {
		return nil, err
	}

	newServerId := req.ServerID
	if newServerId == 0 {
		newServerId = pa.ServerID
	} else if s, err := m.ds.GetServerByID(newServerId); err != nil {
		return nil, err
	} else if s == nil {
		return nil, fmt.Errorf("server %d: %w", newServerId, ErrNotFound)
	}

	oldServerId := pa.ServerID
	wasCapacity := needsCapacity(pa.TypeAnalyticID)
	willCapacity := needsCapacity(req.TypeAnalyticID)

	err = m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		moved := newServerId != oldServerId || wasCapacity != willCapacity
		if moved {
			if wasCapacity {
				if err := tx.ReleaseActivityMonitoringCapacity(oldServerId, 1); err != nil {
					return err
				}
			}
			if willCapacity {
				ok, err := tx.ReserveActivityMonitoringCapacity(newServerId, 1)
				if err != nil {
					return err
				}
				if !ok {
					return ErrNoCapacity
				}
			}
		}

		pa.Name = req.Name
		pa.ServerID = newServerId
		pa.TypeAnalyticID = req.TypeAnalyticID
		pa.SubTypeAnalyticID = req.SubTypeAnalyticID
		if req.IsActive != nil {
			pa.IsActive = *req.IsActive
		}
		// Save would write the stale preloaded associations too
		pa.Server = nil
		pa.TypeAnalytic = nil
		pa.Cctvs = nil

		if err := tx.UpdatePrimaryAnalytic(pa); err != nil {
			return err
		}
		if err := tx.ReplacePrimaryAnalyticCctvs(pa, cctvs); err != nil {
			return err
		}
		return m.writeAttachments(tx, pa.ID, req)
	})
	if err != nil {
		return nil, err
	}

	return m.Get(id)
}

// Delete removes the job, its links, attachments and result rows and
// frees the capacity slot, all in one transaction.
func (m *PrimaryAnalyticModel) Delete(id uint64) error {
	pa, err := m.ds.GetPrimaryAnalyticByID(id)
	if err != nil {
		return err
	}
	if pa == nil {
		return ErrNotFound
	}

	return m.ds.Transaction(func(tx *dbservice.DatabaseService) error {
		if err := tx.DeleteModelAttachments(id, dbmodels.ModelTypePrimaryAnalytic); err != nil {
			return err
		}
		if err := tx.DeleteResultsByPrimaryAnalytic(id); err != nil {
			return err
		}
		if err := tx.DeletePrimaryAnalytic(pa); err != nil {
			return err
		}

		if needsCapacity(pa.TypeAnalyticID) {
			return tx.ReleaseActivityMonitoringCapacity(pa.ServerID, 1)
		}
		return nil
	})
}

func (m *PrimaryAnalyticModel) resolveCctvs(ids []uint64) ([]dbmodels.Cctv, error) {
	cctvs, err := m.ds.GetCctvsByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(cctvs) != len(ids) {
		return nil, fmt.Errorf("one or more cctv ids: %w", ErrNotFound)
	}
	return cctvs, nil
}

func (m *PrimaryAnalyticModel) writeAttachments(tx *dbservice.DatabaseService, paId uint64, req *PrimaryAnalyticReq) error {
	values := make([]dbmodels.ModelHasValue, 0, len(req.Values))
	for _, v := range req.Values {
		vt := v.ValueType
		if vt == "" {
			vt = "string"
		}
		values = append(values, dbmodels.ModelHasValue{Key: v.Key, Value: v.Value, ValueType: vt})
	}
	if err := tx.ReplaceModelValues(paId, dbmodels.ModelTypePrimaryAnalytic, values); err != nil {
		return err
	}

	polygons := make([]dbmodels.ModelHasPolygon, 0, len(req.Polygons))
	for _, p := range req.Polygons {
		polygons = append(polygons, dbmodels.ModelHasPolygon{Name: p.Name, Points: p.Points})
	}
	if err := tx.ReplaceModelPolygons(paId, dbmodels.ModelTypePrimaryAnalytic, polygons); err != nil {
		return err
	}

	embeds := make([]dbmodels.ModelHasEmbed, 0, len(req.Embeds))
	for _, e := range req.Embeds {
		embeds = append(embeds, dbmodels.ModelHasEmbed{Label: e.Label, EmbedUrl: e.EmbedUrl})
	}
	return tx.ReplaceModelEmbeds(paId, dbmodels.ModelTypePrimaryAnalytic, embeds)
}
