package models

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
)

// newModelTestDB wires an in-memory database into a minimal AppConfig
// so models can run without the global config.
func newModelTestDB(t *testing.T) (*config.AppConfig, *dbservice.DatabaseService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
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

	lg := logrus.New()
	lg.SetLevel(logrus.PanicLevel)

	app := &config.AppConfig{ORM: db, Logger: lg}
	return app, dbservice.New(db)
}

func seedServer(t *testing.T, ds *dbservice.DatabaseService, name, ip string, max, cur int64) *dbmodels.Server {
	t.Helper()
	s := &dbmodels.Server{Name: name, Ip: ip, MaxActivityMonitoring: max, CurActivityMonitoring: cur}
	require.NoError(t, ds.CreateServer(s))
	return s
}

func TestSelectServer(t *testing.T) {
	app, ds := newModelTestDB(t)
	m := NewServerModel(app, ds)

	busy := seedServer(t, ds, "busy", "10.0.0.1", 10, 8)
	idle := seedServer(t, ds, "idle", "10.0.0.2", 10, 1)
	roomy := seedServer(t, ds, "roomy", "10.0.0.3", 20, 4)

	t.Run("lowest utilization wins", func(t *testing.T) {
		got, err := m.SelectServer(config.TypeAnalyticActivityMonitoring, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, idle.ID, got.ID)
	})

	t.Run("utilization tie breaks on available slots", func(t *testing.T) {
		// roomy ties idle at 0.2 but has 16 free slots against 8
		idle.CurActivityMonitoring = 2
		require.NoError(t, ds.UpdateServer(idle))

		got, err := m.SelectServer(config.TypeAnalyticActivityMonitoring, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, roomy.ID, got.ID)
	})

	t.Run("excluded servers are skipped", func(t *testing.T) {
		got, err := m.SelectServer(config.TypeAnalyticActivityMonitoring, 1, []uint64{roomy.ID, idle.ID})
		require.NoError(t, err)
		assert.Equal(t, busy.ID, got.ID)
	})

	t.Run("required slots filter candidates", func(t *testing.T) {
		got, err := m.SelectServer(config.TypeAnalyticActivityMonitoring, 10, nil)
		require.NoError(t, err)
		assert.Equal(t, roomy.ID, got.ID)
	})

	t.Run("no capacity anywhere", func(t *testing.T) {
		_, err := m.SelectServer(config.TypeAnalyticActivityMonitoring, 100, nil)
		require.ErrorIs(t, err, ErrNoCapacity)
	})

	t.Run("capacity free types ignore the counters", func(t *testing.T) {
		got, err := m.SelectServer(config.TypeAnalyticWeaponDetection, 100, nil)
		require.NoError(t, err)
		require.NotNil(t, got)
	})
}

func TestSelectServerEmptyFleet(t *testing.T) {
	app, ds := newModelTestDB(t)
	m := NewServerModel(app, ds)

	_, err := m.SelectServer(config.TypeAnalyticWeaponDetection, 1, nil)
	require.ErrorIs(t, err, ErrNoCapacity)
}
