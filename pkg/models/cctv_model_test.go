package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

func TestCctvModelCreate(t *testing.T) {
	app, ds := newModelTestDB(t)
	app.UploadFileSettings.Path = t.TempDir()
	m := NewCctvModel(app, ds, nil)

	req := &CctvReq{Name: "gate", IpAddress: "192.168.1.10", RtspUrl: "rtsp://192.168.1.10/stream"}

	res, err := m.Create(req, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "gate", res.Name)
	assert.Equal(t, "offline", res.Status)

	t.Run("duplicate ip is refused", func(t *testing.T) {
		_, err := m.Create(&CctvReq{Name: "copy", IpAddress: "192.168.1.10", RtspUrl: "rtsp://x/stream"}, nil, 0)
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("update may keep its own ip", func(t *testing.T) {
		updated, err := m.Update(res.ID, &CctvReq{
			Name: "gate north", IpAddress: "192.168.1.10", RtspUrl: "rtsp://192.168.1.10/stream", Status: "online",
		}, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, "gate north", updated.Name)
		assert.Equal(t, "online", updated.Status)
	})

	t.Run("update onto a taken ip is refused", func(t *testing.T) {
		other, err := m.Create(&CctvReq{Name: "yard", IpAddress: "192.168.1.11", RtspUrl: "rtsp://x/stream"}, nil, 0)
		require.NoError(t, err)

		_, err = m.Update(other.ID, &CctvReq{Name: "yard", IpAddress: "192.168.1.10", RtspUrl: "rtsp://x/stream"}, nil, 0)
		require.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestCctvModelDelete(t *testing.T) {
	app, ds := newModelTestDB(t)
	app.UploadFileSettings.Path = t.TempDir()
	m := NewCctvModel(app, ds, nil)

	res, err := m.Create(&CctvReq{Name: "gate", IpAddress: "192.168.1.10", RtspUrl: "rtsp://x/stream"}, nil, 0)
	require.NoError(t, err)

	t.Run("attached camera is refused", func(t *testing.T) {
		require.NoError(t, ds.CreateTypeAnalytic(&dbmodels.TypeAnalytic{
			ID: config.TypeAnalyticWeaponDetection, Name: "Weapon Detection", Slug: "weapon-detection",
		}))
		server := seedServer(t, ds, "node-1", "10.0.0.1", 0, 0)
		pa := &dbmodels.PrimaryAnalytic{Name: "watch", ServerID: server.ID, TypeAnalyticID: config.TypeAnalyticWeaponDetection, IsActive: 1}
		require.NoError(t, ds.CreatePrimaryAnalytic(pa))
		require.NoError(t, ds.ReplacePrimaryAnalyticCctvs(pa, []dbmodels.Cctv{{ID: res.ID}}))

		require.ErrorIs(t, m.Delete(res.ID), ErrInUse)

		// detach and try again
		require.NoError(t, ds.DeletePrimaryAnalytic(pa))
		require.NoError(t, m.Delete(res.ID))
	})

	t.Run("missing camera", func(t *testing.T) {
		require.ErrorIs(t, m.Delete(9999), ErrNotFound)
	})
}
