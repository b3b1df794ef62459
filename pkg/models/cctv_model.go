package models

import (
	"mime/multipart"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type CctvModel struct {
	app       *config.AppConfig
	ds        *dbservice.DatabaseService
	fileModel *FileModel
}

func NewCctvModel(app *config.AppConfig, ds *dbservice.DatabaseService, fileModel *FileModel) *CctvModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if fileModel == nil {
		fileModel = NewFileModel(app)
	}

	return &CctvModel{
		app:       app,
		ds:        ds,
		fileModel: fileModel,
	}
}

type CctvReq struct {
	Name      string `json:"name" form:"name" validate:"required,min=2,max=255"`
	IpAddress string `json:"ip_address" form:"ip_address" validate:"required,ip"`
	RtspUrl   string `json:"rtsp_url" form:"rtsp_url" validate:"required,max=500"`
	Location  string `json:"location" form:"location" validate:"omitempty,max=255"`
	Status    string `json:"status" form:"status" validate:"omitempty,oneof=online offline"`
}

// CctvRes carries the absolute polygon image URL instead of the stored
// relative path.
type CctvRes struct {
	dbmodels.Cctv
	PolygonImgUrl string `json:"polygon_img_url,omitempty"`
}

var cctvSortFields = []string{"id", "name", "ip_address", "location", "status", "created_at"}

func (m *CctvModel) toRes(c dbmodels.Cctv) CctvRes {
	return CctvRes{
		Cctv:          c,
		PolygonImgUrl: m.fileModel.PublicUrl(c.PolygonImg),
	}
}

func (m *CctvModel) List(pq utils.PageQuery, search, sortField, sortDir string) ([]CctvRes, *utils.Pagination, error) {
	sort := utils.ParseSort(sortField, sortDir, cctvSortFields, "id", "ASC")

	cctvs, total, err := m.ds.GetCctvs(pq.Offset, pq.Limit, search, sort.OrderClause())
	if err != nil {
		return nil, nil, err
	}

	out := make([]CctvRes, 0, len(cctvs))
	for _, c := range cctvs {
		out = append(out, m.toRes(c))
	}

	return out, utils.NewPagination(pq.Page, pq.Limit, total), nil
}

func (m *CctvModel) Get(id uint64) (*CctvRes, error) {
	cctv, err := m.ds.GetCctvByID(id)
	if err != nil {
		return nil, err
	}
	if cctv == nil {
		return nil, ErrNotFound
	}

	res := m.toRes(*cctv)
	return &res, nil
}

// Create registers a camera, optionally with a polygon image. When the
// database write fails after the image was stored, the file is removed
// again so no orphan stays behind.
func (m *CctvModel) Create(req *CctvReq, polygonImg *multipart.FileHeader, userId uint64) (*CctvRes, error) {
	existing, err := m.ds.GetCctvByIpAddress(req.IpAddress, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	cctv := &dbmodels.Cctv{
		Name:      req.Name,
		IpAddress: req.IpAddress,
		RtspUrl:   req.RtspUrl,
		Location:  req.Location,
		Status:    req.Status,
	}
	if cctv.Status == "" {
		cctv.Status = "offline"
	}

	if polygonImg != nil {
		relPath, err := m.fileModel.SaveUpload(polygonImg, "cctv", userId, "polygon")
		if err != nil {
			return nil, err
		}
		cctv.PolygonImg = relPath
	}

	if err = m.ds.CreateCctv(cctv); err != nil {
		// compensate the already written file
		_ = m.fileModel.DeleteFile(cctv.PolygonImg)
		return nil, err
	}

	res := m.toRes(*cctv)
	return &res, nil
}

func (m *CctvModel) Update(id uint64, req *CctvReq, polygonImg *multipart.FileHeader, userId uint64) (*CctvRes, error) {
	cctv, err := m.ds.GetCctvByID(id)
	if err != nil {
		return nil, err
	}
	if cctv == nil {
		return nil, ErrNotFound
	}

	existing, err := m.ds.GetCctvByIpAddress(req.IpAddress, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	oldImg := cctv.PolygonImg
	newImg := ""
	if polygonImg != nil {
		if newImg, err = m.fileModel.SaveUpload(polygonImg, "cctv", userId, "polygon"); err != nil {
			return nil, err
		}
		cctv.PolygonImg = newImg
	}

	cctv.Name = req.Name
	cctv.IpAddress = req.IpAddress
	cctv.RtspUrl = req.RtspUrl
	cctv.Location = req.Location
	if req.Status != "" {
		cctv.Status = req.Status
	}

	if err = m.ds.UpdateCctv(cctv); err != nil {
		_ = m.fileModel.DeleteFile(newImg)
		return nil, err
	}

	// replacement succeeded, the old image can go
	if newImg != "" && oldImg != "" {
		_ = m.fileModel.DeleteFile(oldImg)
	}

	res := m.toRes(*cctv)
	return &res, nil
}

// Delete removes the row and the stored polygon image. Cameras still
// attached to a primary analytic are refused.
func (m *CctvModel) Delete(id uint64) error {
	cctv, err := m.ds.GetCctvByID(id)
	if err != nil {
		return err
	}
	if cctv == nil {
		return ErrNotFound
	}

	attached, err := m.ds.CountPrimaryAnalyticsByCctv(id)
	if err != nil {
		return err
	}
	if attached > 0 {
		return ErrInUse
	}

	if err = m.ds.DeleteCctv(cctv); err != nil {
		return err
	}

	return m.fileModel.DeleteFile(cctv.PolygonImg)
}
