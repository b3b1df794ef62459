package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

func TestParseDetectedAt(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseDetectedAt("2026-08-15T10:30:00+07:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 15, 3, 30, 0, 0, time.UTC).Unix(), got.Unix())
	})

	t.Run("plain timestamp is read in the report zone", func(t *testing.T) {
		got, err := parseDetectedAt("2026-08-15 10:30:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 15, 10, 30, 0, 0, config.ReportLocation).Unix(), got.Unix())
	})

	t.Run("empty defaults to now", func(t *testing.T) {
		got, err := parseDetectedAt("")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), got, time.Second)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := parseDetectedAt("next tuesday")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCategoryAllowed(t *testing.T) {
	assert.True(t, categoryAllowed("standing", config.ActivityMonitoringCategories))
	assert.False(t, categoryAllowed("handgun", config.ActivityMonitoringCategories))
	assert.False(t, categoryAllowed("", config.ActivityMonitoringCategories))
}

func TestDetectionListReqFilter(t *testing.T) {
	t.Run("dates become a half open window", func(t *testing.T) {
		req := &DetectionListReq{
			PrimaryAnalyticID: 3,
			Category:          "knife",
			StartDate:         "2026-08-15",
			EndDate:           "2026-08-15",
		}

		f, err := req.filter()
		require.NoError(t, err)
		assert.Equal(t, uint64(3), f.PrimaryAnalyticID)
		assert.Equal(t, "knife", f.Category)

		require.NotNil(t, f.From)
		require.NotNil(t, f.To)
		assert.True(t, f.From.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, config.ReportLocation)))
		assert.True(t, f.To.Equal(time.Date(2026, 8, 16, 0, 0, 0, 0, config.ReportLocation)))
	})

	t.Run("missing dates leave the window open", func(t *testing.T) {
		f, err := (&DetectionListReq{CctvID: 9}).filter()
		require.NoError(t, err)
		assert.Nil(t, f.From)
		assert.Nil(t, f.To)
		assert.Equal(t, uint64(9), f.CctvID)
	})

	t.Run("malformed date fails", func(t *testing.T) {
		_, err := (&DetectionListReq{StartDate: "15-08-2026"}).filter()
		require.Error(t, err)
	})
}

func TestExportRange(t *testing.T) {
	t.Run("inverted range is swapped", func(t *testing.T) {
		f, stem, err := exportRange(&ChartReq{StartDate: "2026-08-20", EndDate: "2026-08-15"})
		require.NoError(t, err)
		assert.Equal(t, "2026-08-15_2026-08-20", stem)
		assert.True(t, f.From.Before(*f.To))
		assert.True(t, f.From.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, config.ReportLocation)))
		assert.True(t, f.To.Equal(time.Date(2026, 8, 21, 0, 0, 0, 0, config.ReportLocation)))
	})

	t.Run("bad input fails", func(t *testing.T) {
		_, _, err := exportRange(&ChartReq{StartDate: "soon", EndDate: "2026-08-15"})
		require.Error(t, err)
	})
}
