package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

func TestNomorLambungCreate(t *testing.T) {
	app, ds := newModelTestDB(t)
	m := NewNomorLambungModel(app, ds)

	server := seedServer(t, ds, "node-1", "10.0.0.1", 0, 0)
	require.NoError(t, ds.CreateTypeAnalytic(&dbmodels.TypeAnalytic{
		ID: config.TypeAnalyticNomorLambung, Name: "Nomor Lambung", Slug: "nomor-lambung",
	}))
	cctv := &dbmodels.Cctv{Name: "dock", IpAddress: "192.168.1.10", RtspUrl: "rtsp://x/stream"}
	require.NoError(t, ds.CreateCctv(cctv))
	pa := &dbmodels.PrimaryAnalytic{Name: "dock ocr", ServerID: server.ID, TypeAnalyticID: config.TypeAnalyticNomorLambung, IsActive: 1}
	require.NoError(t, ds.CreatePrimaryAnalytic(pa))

	t.Run("readable reading with plate", func(t *testing.T) {
		row, err := m.Create(&NomorLambungReq{
			PrimaryAnalyticID: pa.ID,
			CctvID:            cctv.ID,
			Category:          "readable",
			PlateNumber:       "NL-102",
			DetectedAt:        "2026-08-15 10:30:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "NL-102", row.PlateNumber)
		assert.NotZero(t, row.ID)
	})

	t.Run("readable reading without plate is refused", func(t *testing.T) {
		_, err := m.Create(&NomorLambungReq{
			PrimaryAnalyticID: pa.ID,
			CctvID:            cctv.ID,
			Category:          "readable",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unreadable reading needs no plate", func(t *testing.T) {
		row, err := m.Create(&NomorLambungReq{
			PrimaryAnalyticID: pa.ID,
			CctvID:            cctv.ID,
			Category:          "unreadable",
		})
		require.NoError(t, err)
		assert.Empty(t, row.PlateNumber)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := m.Create(&NomorLambungReq{
			PrimaryAnalyticID: pa.ID,
			CctvID:            cctv.ID,
			Category:          "smudged",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown analytic job", func(t *testing.T) {
		_, err := m.Create(&NomorLambungReq{
			PrimaryAnalyticID: 9999,
			CctvID:            cctv.ID,
			Category:          "unreadable",
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
