package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerUpdateCapacityGuard(t *testing.T) {
	app, ds := newModelTestDB(t)
	m := NewServerModel(app, ds)

	server := seedServer(t, ds, "node-1", "10.0.0.1", 5, 0)
	ok, err := ds.ReserveActivityMonitoringCapacity(server.ID, 4)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("rejects max below slots in use", func(t *testing.T) {
		_, err := m.Update(server.ID, &ServerReq{
			Name: "node-1", Ip: "10.0.0.1", MaxActivityMonitoring: 2,
		})
		require.ErrorIs(t, err, ErrInvalidInput)

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.MaxActivityMonitoring)
		assert.Equal(t, int64(4), got.CurActivityMonitoring)
	})

	t.Run("allows shrinking down to slots in use", func(t *testing.T) {
		got, err := m.Update(server.ID, &ServerReq{
			Name: "node-1", Ip: "10.0.0.1", MaxActivityMonitoring: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.MaxActivityMonitoring)
		assert.Equal(t, int64(4), got.CurActivityMonitoring)
	})
}
