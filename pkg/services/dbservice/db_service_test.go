package dbservice

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

func newTestService(t *testing.T) *DatabaseService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would see a different empty memory database
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&dbmodels.User{},
		&dbmodels.Role{},
		&dbmodels.Permission{},
		&dbmodels.Server{},
		&dbmodels.Cctv{},
		&dbmodels.TypeAnalytic{},
		&dbmodels.SubTypeAnalytic{},
		&dbmodels.PrimaryAnalytic{},
		&dbmodels.ActivityMonitoring{},
		&dbmodels.WeaponDetection{},
		&dbmodels.AnimalPopulation{},
		&dbmodels.PpeDetection{},
		&dbmodels.NomorLambung{},
		&dbmodels.ModelHasValue{},
		&dbmodels.ModelHasPolygon{},
		&dbmodels.ModelHasEmbed{},
	)
	require.NoError(t, err)

	return New(db)
}

func TestReserveActivityMonitoringCapacity(t *testing.T) {
	ds := newTestService(t)

	server := &dbmodels.Server{Name: "node-1", Ip: "10.0.0.1", MaxActivityMonitoring: 2}
	require.NoError(t, ds.CreateServer(server))

	t.Run("reserve within capacity", func(t *testing.T) {
		ok, err := ds.ReserveActivityMonitoringCapacity(server.ID, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.CurActivityMonitoring)
	})

	t.Run("reserve beyond capacity leaves counter untouched", func(t *testing.T) {
		ok, err := ds.ReserveActivityMonitoringCapacity(server.ID, 2)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.CurActivityMonitoring)
	})

	t.Run("reserve up to the limit", func(t *testing.T) {
		ok, err := ds.ReserveActivityMonitoringCapacity(server.ID, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.CurActivityMonitoring)
	})

	t.Run("release decrements", func(t *testing.T) {
		require.NoError(t, ds.ReleaseActivityMonitoringCapacity(server.ID, 1))

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.CurActivityMonitoring)
	})

	t.Run("release never goes below zero", func(t *testing.T) {
		require.NoError(t, ds.ReleaseActivityMonitoringCapacity(server.ID, 5))

		got, err := ds.GetServerByID(server.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.CurActivityMonitoring)
	})

	t.Run("unknown server reports no capacity", func(t *testing.T) {
		ok, err := ds.ReserveActivityMonitoringCapacity(9999, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNotFoundReturnsNil(t *testing.T) {
	ds := newTestService(t)

	server, err := ds.GetServerByID(42)
	require.NoError(t, err)
	assert.Nil(t, server)

	cctv, err := ds.GetCctvByID(42)
	require.NoError(t, err)
	assert.Nil(t, cctv)

	pa, err := ds.GetPrimaryAnalyticByID(42)
	require.NoError(t, err)
	assert.Nil(t, pa)
}

func TestGetCctvByIpAddress(t *testing.T) {
	ds := newTestService(t)

	first := &dbmodels.Cctv{Name: "gate", IpAddress: "192.168.1.10", RtspUrl: "rtsp://192.168.1.10/stream"}
	require.NoError(t, ds.CreateCctv(first))
	second := &dbmodels.Cctv{Name: "yard", IpAddress: "192.168.1.11", RtspUrl: "rtsp://192.168.1.11/stream"}
	require.NoError(t, ds.CreateCctv(second))

	t.Run("finds by address", func(t *testing.T) {
		got, err := ds.GetCctvByIpAddress("192.168.1.10", 0)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("exclude hides own row", func(t *testing.T) {
		got, err := ds.GetCctvByIpAddress("192.168.1.10", first.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("exclude still catches other rows", func(t *testing.T) {
		got, err := ds.GetCctvByIpAddress("192.168.1.11", first.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, second.ID, got.ID)
	})
}

func TestRoleLookupAndUsage(t *testing.T) {
	ds := newTestService(t)

	admin := &dbmodels.Role{Name: "admin"}
	require.NoError(t, ds.CreateRole(admin))
	viewer := &dbmodels.Role{Name: "viewer"}
	require.NoError(t, ds.CreateRole(viewer))

	got, err := ds.GetRoleByName("admin", 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, admin.ID, got.ID)

	got, err = ds.GetRoleByName("admin", admin.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	user := &dbmodels.User{Name: "ops", Email: "ops@example.com", Password: "x"}
	require.NoError(t, ds.CreateUser(user))
	require.NoError(t, ds.ReplaceUserRoles(user, []dbmodels.Role{{ID: admin.ID}}))

	total, err := ds.CountUsersWithRole(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	total, err = ds.CountUsersWithRole(viewer.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func seedAnalytic(t *testing.T, ds *DatabaseService) (*dbmodels.Server, *dbmodels.Cctv, *dbmodels.PrimaryAnalytic) {
	t.Helper()

	server := &dbmodels.Server{Name: "node-1", Ip: "10.0.0.1", MaxActivityMonitoring: 4}
	require.NoError(t, ds.CreateServer(server))
	cctv := &dbmodels.Cctv{Name: "gate", IpAddress: "192.168.1.10", RtspUrl: "rtsp://192.168.1.10/stream"}
	require.NoError(t, ds.CreateCctv(cctv))
	ta := &dbmodels.TypeAnalytic{ID: 1, Name: "Activity Monitoring"}
	require.NoError(t, ds.CreateTypeAnalytic(ta))

	pa := &dbmodels.PrimaryAnalytic{Name: "gate watch", ServerID: server.ID, TypeAnalyticID: ta.ID, IsActive: 1}
	require.NoError(t, ds.CreatePrimaryAnalytic(pa))
	require.NoError(t, ds.ReplacePrimaryAnalyticCctvs(pa, []dbmodels.Cctv{{ID: cctv.ID}}))

	return server, cctv, pa
}

func TestPrimaryAnalyticCctvAssociation(t *testing.T) {
	ds := newTestService(t)
	_, cctv, pa := seedAnalytic(t, ds)

	got, err := ds.GetPrimaryAnalyticByID(pa.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Cctvs, 1)
	assert.Equal(t, cctv.ID, got.Cctvs[0].ID)

	total, err := ds.CountPrimaryAnalyticsByCctv(cctv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	require.NoError(t, ds.DeletePrimaryAnalytic(got))

	total, err = ds.CountPrimaryAnalyticsByCctv(cctv.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestModelAttachments(t *testing.T) {
	ds := newTestService(t)
	_, _, pa := seedAnalytic(t, ds)

	err := ds.ReplaceModelValues(pa.ID, dbmodels.ModelTypePrimaryAnalytic, []dbmodels.ModelHasValue{
		{Key: "threshold", Value: "0.6", ValueType: "float"},
		{Key: "mode", Value: "strict", ValueType: "string"},
	})
	require.NoError(t, err)

	t.Run("replace swaps the full set", func(t *testing.T) {
		err := ds.ReplaceModelValues(pa.ID, dbmodels.ModelTypePrimaryAnalytic, []dbmodels.ModelHasValue{
			{Key: "threshold", Value: "0.8", ValueType: "float"},
		})
		require.NoError(t, err)

		rows, err := ds.GetModelValues(pa.ID, dbmodels.ModelTypePrimaryAnalytic)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "threshold", rows[0].Key)
		assert.Equal(t, "0.8", rows[0].Value)
	})

	t.Run("delete clears every attachment table", func(t *testing.T) {
		err := ds.ReplaceModelPolygons(pa.ID, dbmodels.ModelTypePrimaryAnalytic, []dbmodels.ModelHasPolygon{
			{Name: "zone-a", Points: "[[0,0],[10,0],[10,10]]"},
		})
		require.NoError(t, err)
		err = ds.ReplaceModelEmbeds(pa.ID, dbmodels.ModelTypePrimaryAnalytic, []dbmodels.ModelHasEmbed{
			{Label: "stream", EmbedUrl: "https://example.com/embed/1"},
		})
		require.NoError(t, err)

		require.NoError(t, ds.DeleteModelAttachments(pa.ID, dbmodels.ModelTypePrimaryAnalytic))

		values, err := ds.GetModelValues(pa.ID, dbmodels.ModelTypePrimaryAnalytic)
		require.NoError(t, err)
		assert.Empty(t, values)
		polygons, err := ds.GetModelPolygons(pa.ID, dbmodels.ModelTypePrimaryAnalytic)
		require.NoError(t, err)
		assert.Empty(t, polygons)
		embeds, err := ds.GetModelEmbeds(pa.ID, dbmodels.ModelTypePrimaryAnalytic)
		require.NoError(t, err)
		assert.Empty(t, embeds)
	})
}

func TestDetectionFilter(t *testing.T) {
	ds := newTestService(t)
	_, cctv, pa := seedAnalytic(t, ds)

	base := time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC)
	rows := []dbmodels.WeaponDetection{
		{PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "handgun", Confidence: 0.91, DetectedAt: base},
		{PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "knife", Confidence: 0.85, DetectedAt: base.Add(time.Hour)},
		{PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "handgun", Confidence: 0.77, DetectedAt: base.Add(2 * time.Hour)},
		{PrimaryAnalyticID: pa.ID + 1, CctvID: cctv.ID, Category: "handgun", Confidence: 0.99, DetectedAt: base},
	}
	for i := range rows {
		require.NoError(t, ds.CreateWeaponDetection(&rows[i]))
	}

	t.Run("filters by analytic and category", func(t *testing.T) {
		got, total, err := ds.GetWeaponDetections(&DetectionFilter{
			PrimaryAnalyticID: pa.ID,
			Category:          "handgun",
		}, 0, 10, "detected_at ASC")
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, got, 2)
		assert.Equal(t, 0.91, got[0].Confidence)
	})

	t.Run("time range is half open", func(t *testing.T) {
		from := base
		to := base.Add(2 * time.Hour)
		got, total, err := ds.GetWeaponDetections(&DetectionFilter{
			PrimaryAnalyticID: pa.ID,
			From:              &from,
			To:                &to,
		}, 0, 10, "detected_at ASC")
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, row := range got {
			assert.True(t, row.DetectedAt.Before(to))
		}
	})

	t.Run("pagination keeps the full count", func(t *testing.T) {
		got, total, err := ds.GetWeaponDetections(&DetectionFilter{
			PrimaryAnalyticID: pa.ID,
		}, 0, 2, "detected_at ASC")
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, got, 2)
	})
}

func TestDeleteResultsByPrimaryAnalytic(t *testing.T) {
	ds := newTestService(t)
	_, cctv, pa := seedAnalytic(t, ds)

	now := time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC)
	require.NoError(t, ds.CreateActivityMonitoring(&dbmodels.ActivityMonitoring{
		PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "standing", PersonCount: 3, DetectedAt: now,
	}))
	require.NoError(t, ds.CreateNomorLambung(&dbmodels.NomorLambung{
		PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "readable", PlateNumber: "NL-102", DetectedAt: now,
	}))
	survivor := &dbmodels.ActivityMonitoring{
		PrimaryAnalyticID: pa.ID + 1, CctvID: cctv.ID, Category: "walking", PersonCount: 1, DetectedAt: now,
	}
	require.NoError(t, ds.CreateActivityMonitoring(survivor))

	require.NoError(t, ds.DeleteResultsByPrimaryAnalytic(pa.ID))

	_, total, err := ds.GetActivityMonitorings(&DetectionFilter{PrimaryAnalyticID: pa.ID}, 0, 10, "id ASC")
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = ds.GetNomorLambungs(&DetectionFilter{PrimaryAnalyticID: pa.ID}, 0, 10, "id ASC")
	require.NoError(t, err)
	assert.Zero(t, total)

	got, err := ds.GetActivityMonitoringByID(survivor.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestGetDailyCategoryCounts(t *testing.T) {
	ds := newTestService(t)
	_, cctv, pa := seedAnalytic(t, ds)

	// 2026-08-15 10:00 and 11:00 in the report zone, stored as UTC
	day1 := time.Date(2026, 8, 15, 3, 0, 0, 0, time.UTC)
	// 2026-08-16 10:00 report zone
	day2 := time.Date(2026, 8, 16, 3, 0, 0, 0, time.UTC)
	for _, row := range []dbmodels.ActivityMonitoring{
		{PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "standing", DetectedAt: day1},
		{PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "standing", DetectedAt: day1.Add(time.Hour)},
		{PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "sitting", DetectedAt: day1},
		{PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "standing", DetectedAt: day2},
	} {
		r := row
		require.NoError(t, ds.CreateActivityMonitoring(&r))
	}

	day := time.Date(2026, 8, 15, 0, 0, 0, 0, config.ReportLocation)
	start, end := utils.ReportDayBounds(day)

	rows, err := ds.GetDailyCategoryCounts(&dbmodels.ActivityMonitoring{}, start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byCategory := map[string]int64{}
	for _, row := range rows {
		assert.Equal(t, "2026-08-15", row.Date)
		byCategory[row.Category] = row.Total
	}
	assert.Equal(t, int64(2), byCategory["standing"])
	assert.Equal(t, int64(1), byCategory["sitting"])
}

func TestGetDailyCategoryCountsEarlyMorning(t *testing.T) {
	ds := newTestService(t)
	_, cctv, pa := seedAnalytic(t, ds)

	// 01:00 on 2026-08-15 in the report zone is still 2026-08-14 in UTC
	early := time.Date(2026, 8, 15, 1, 0, 0, 0, config.ReportLocation)
	require.NoError(t, ds.CreateActivityMonitoring(&dbmodels.ActivityMonitoring{
		PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "standing", DetectedAt: early.UTC(),
	}))

	start, end := utils.ReportDayBounds(early)

	rows, err := ds.GetDailyCategoryCounts(&dbmodels.ActivityMonitoring{}, start, end)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-15", rows[0].Date)
	assert.Equal(t, "standing", rows[0].Category)
	assert.Equal(t, int64(1), rows[0].Total)

	// the previous report day must not pick it up
	prevStart, prevEnd := utils.ReportDayBounds(early.AddDate(0, 0, -1))
	rows, err = ds.GetDailyCategoryCounts(&dbmodels.ActivityMonitoring{}, prevStart, prevEnd)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetLatestDetectionTimeEmpty(t *testing.T) {
	ds := newTestService(t)

	latest, err := ds.GetLatestDetectionTime(&dbmodels.PpeDetection{})
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestIsFileReferenced(t *testing.T) {
	ds := newTestService(t)
	_, cctv, pa := seedAnalytic(t, ds)

	require.NoError(t, ds.CreateActivityMonitoring(&dbmodels.ActivityMonitoring{
		PrimaryAnalyticID: pa.ID, CctvID: cctv.ID, Category: "standing",
		Image:      "activity-monitoring/1/snap.jpg",
		DetectedAt: time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC),
	}))
	cctv.PolygonImg = "cctv/1/polygon.png"
	require.NoError(t, ds.UpdateCctv(cctv))

	ok, err := ds.IsFileReferenced("activity-monitoring/1/snap.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ds.IsFileReferenced("cctv/1/polygon.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ds.IsFileReferenced("cctv/1/gone.png")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ds.IsFileReferenced("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionRollsBack(t *testing.T) {
	ds := newTestService(t)

	boom := errors.New("boom")
	err := ds.Transaction(func(txs *DatabaseService) error {
		if err := txs.CreateServer(&dbmodels.Server{Name: "ghost", Ip: "10.9.9.9"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := ds.GetServerByIp("10.9.9.9", 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}
