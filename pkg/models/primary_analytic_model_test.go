package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

func newAnalyticTestModel(t *testing.T) (*PrimaryAnalyticModel, *dbservice.DatabaseService) {
	t.Helper()

	app, ds := newModelTestDB(t)

	for _, ta := range []dbmodels.TypeAnalytic{
		{ID: config.TypeAnalyticActivityMonitoring, Name: "Activity Monitoring", Slug: "activity-monitoring"},
		{ID: config.TypeAnalyticWeaponDetection, Name: "Weapon Detection", Slug: "weapon-detection"},
	} {
		row := ta
		require.NoError(t, ds.CreateTypeAnalytic(&row))
	}
	require.NoError(t, ds.CreateCctv(&dbmodels.Cctv{Name: "gate", IpAddress: "192.168.1.10", RtspUrl: "rtsp://192.168.1.10/stream"}))
	require.NoError(t, ds.CreateCctv(&dbmodels.Cctv{Name: "yard", IpAddress: "192.168.1.11", RtspUrl: "rtsp://192.168.1.11/stream"}))

	return NewPrimaryAnalyticModel(app, ds, nil), ds
}

func TestPrimaryAnalyticCreate(t *testing.T) {
	m, ds := newAnalyticTestModel(t)
	server := seedServer(t, ds, "node-1", "10.0.0.1", 2, 0)

	t.Run("creates with cctvs and attachments and reserves a slot", func(t *testing.T) {
		res, err := m.Create(&PrimaryAnalyticReq{
			Name:           "gate watch",
			ServerID:       server.ID,
			TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
			CctvIDs:        []uint64{1, 2},
			Values:         []AnalyticValueReq{{Key: "threshold", Value: "0.6", ValueType: "number"}},
			Polygons:       []AnalyticPolygonReq{{Name: "zone-a", Points: "[[0,0],[10,0],[10,10]]"}},
		})
		require.NoError(t, err)
		assert.Equal(t, server.ID, res.ServerID)
		assert.Len(t, res.Cctvs, 2)
		require.Len(t, res.Values, 1)
		assert.Equal(t, "threshold", res.Values[0].Key)
		assert.Len(t, res.Polygons, 1)
		assert.Empty(t, res.Embeds)

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.CurActivityMonitoring)
	})

	t.Run("value type defaults to string", func(t *testing.T) {
		res, err := m.Create(&PrimaryAnalyticReq{
			Name:           "yard watch",
			ServerID:       server.ID,
			TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
			CctvIDs:        []uint64{2},
			Values:         []AnalyticValueReq{{Key: "mode", Value: "strict"}},
		})
		require.NoError(t, err)
		require.Len(t, res.Values, 1)
		assert.Equal(t, "string", res.Values[0].ValueType)
	})

	t.Run("full server rejects and rolls back", func(t *testing.T) {
		_, err := m.Create(&PrimaryAnalyticReq{
			Name:           "one too many",
			ServerID:       server.ID,
			TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
			CctvIDs:        []uint64{1},
		})
		require.ErrorIs(t, err, ErrNoCapacity)

		_, total, listErr := ds.GetPrimaryAnalytics(0, 10, "one too many", "id ASC")
		require.NoError(t, listErr)
		assert.Zero(t, total)

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.CurActivityMonitoring)
	})

	t.Run("capacity free type fits on a full server", func(t *testing.T) {
		res, err := m.Create(&PrimaryAnalyticReq{
			Name:           "armory watch",
			ServerID:       server.ID,
			TypeAnalyticID: config.TypeAnalyticWeaponDetection,
			CctvIDs:        []uint64{1},
		})
		require.NoError(t, err)
		assert.Equal(t, server.ID, res.ServerID)

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.CurActivityMonitoring)
	})

	t.Run("unknown type analytic", func(t *testing.T) {
		_, err := m.Create(&PrimaryAnalyticReq{
			Name:           "mystery",
			ServerID:       server.ID,
			TypeAnalyticID: 99,
			CctvIDs:        []uint64{1},
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown cctv id", func(t *testing.T) {
		_, err := m.Create(&PrimaryAnalyticReq{
			Name:           "ghost cam",
			ServerID:       server.ID,
			TypeAnalyticID: config.TypeAnalyticWeaponDetection,
			CctvIDs:        []uint64{1, 77},
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPrimaryAnalyticCreateAutoSelect(t *testing.T) {
	m, ds := newAnalyticTestModel(t)
	seedServer(t, ds, "busy", "10.0.0.1", 10, 9)
	idle := seedServer(t, ds, "idle", "10.0.0.2", 10, 1)

	res, err := m.Create(&PrimaryAnalyticReq{
		Name:           "auto placed",
		TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
		CctvIDs:        []uint64{1},
	})
	require.NoError(t, err)
	assert.Equal(t, idle.ID, res.ServerID)

	got, err := ds.GetServerByID(idle.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.CurActivityMonitoring)
}

func TestPrimaryAnalyticUpdateMovesCapacity(t *testing.T) {
	m, ds := newAnalyticTestModel(t)
	first := seedServer(t, ds, "first", "10.0.0.1", 2, 0)
	second := seedServer(t, ds, "second", "10.0.0.2", 2, 0)

	res, err := m.Create(&PrimaryAnalyticReq{
		Name:           "mover",
		ServerID:       first.ID,
		TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
		CctvIDs:        []uint64{1},
	})
	require.NoError(t, err)

	updated, err := m.Update(res.ID, &PrimaryAnalyticReq{
		Name:           "mover",
		ServerID:       second.ID,
		TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
		CctvIDs:        []uint64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.ServerID)
	assert.Len(t, updated.Cctvs, 2)

	got, err := ds.GetServerByID(first.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurActivityMonitoring)

	got, err = ds.GetServerByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CurActivityMonitoring)
}

func TestPrimaryAnalyticUpdateUnknownType(t *testing.T) {
	m, ds := newAnalyticTestModel(t)
	server := seedServer(t, ds, "node-1", "10.0.0.1", 2, 0)

	res, err := m.Create(&PrimaryAnalyticReq{
		Name:           "stable",
		ServerID:       server.ID,
		TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
		CctvIDs:        []uint64{1},
	})
	require.NoError(t, err)

	_, err = m.Update(res.ID, &PrimaryAnalyticReq{
		Name:           "stable",
		ServerID:       server.ID,
		TypeAnalyticID: 99,
		CctvIDs:        []uint64{1},
	})
	require.ErrorIs(t, err, ErrNotFound)

	got, err := m.Get(res.ID)
	require.NoError(t, err)
	assert.Equal(t, config.TypeAnalyticActivityMonitoring, got.TypeAnalyticID)
}

func TestPrimaryAnalyticDelete(t *testing.T) {
	m, ds := newAnalyticTestModel(t)
	server := seedServer(t, ds, "node-1", "10.0.0.1", 2, 0)

	res, err := m.Create(&PrimaryAnalyticReq{
		Name:           "short lived",
		ServerID:       server.ID,
		TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
		CctvIDs:        []uint64{1},
		Embeds:         []AnalyticEmbedReq{{Label: "stream", EmbedUrl: "https://example.com/embed/1"}},
	})
	require.NoError(t, err)

	require.NoError(t, m.Delete(res.ID))

	_, err = m.Get(res.ID)
	require.ErrorIs(t, err, ErrNotFound)

	embeds, err := ds.GetModelEmbeds(res.ID, dbmodels.ModelTypePrimaryAnalytic)
	require.NoError(t, err)
	assert.Empty(t, embeds)

	got, err := ds.GetServerByID(server.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurActivityMonitoring)

	require.ErrorIs(t, m.Delete(res.ID), ErrNotFound)
}

func TestPrimaryAnalyticList(t *testing.T) {
	m, ds := newAnalyticTestModel(t)
	server := seedServer(t, ds, "node-1", "10.0.0.1", 10, 0)

	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, err := m.Create(&PrimaryAnalyticReq{
			Name:           name,
			ServerID:       server.ID,
			TypeAnalyticID: config.TypeAnalyticActivityMonitoring,
			CctvIDs:        []uint64{1},
		})
		require.NoError(t, err)
	}

	rows, pg, err := m.List(utils.PageQuery{Page: 1, Limit: 2, Offset: 0}, "", "name", "ASC")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0].Name)
	assert.Equal(t, int64(3), pg.Total)
	assert.True(t, pg.HasNext)

	rows, _, err = m.List(utils.PageQuery{Page: 1, Limit: 10, Offset: 0}, "gam", "id", "ASC")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "gamma", rows[0].Name)
}
