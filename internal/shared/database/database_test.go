package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestBuildPostgresDSN(t *testing.T) {
	dsn := buildPostgresDSN(config.DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw", Name: "together", SSLMode: "disable",
	})

	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=together sslmode=disable TimeZone=UTC", dsn)
}

func TestBuildOracleDSN(t *testing.T) {
	tests := []struct {
		name    string
		sslMode string
		want    string
	}{
		{name: "ssl disabled", sslMode: "disable", want: "oracle://app:p%40ss%2Fword@db:1521/ORCL?SSL=false"},
		{name: "ssl required", sslMode: "require", want: "oracle://app:p%40ss%2Fword@db:1521/ORCL?SSL=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildOracleDSN(config.DatabaseConfig{
				Host: "db", Port: 1521, User: "app", Password: "p@ss/word", Name: "ORCL", SSLMode: tt.sslMode,
			})
			assert.Equal(t, tt.want, dsn)
		})
	}
}

func TestOpenDialector_UnknownDriver(t *testing.T) {
	_, err := openDialector(config.DatabaseConfig{Driver: "mysql"})

	assert.Error(t, err)
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	gormConfig := NewGormConfig(cfg)
	gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	t.Run("disabled leaves the schema alone", func(t *testing.T) {
		db := openMemory(t)
		cfg := &config.Config{App: config.AppConfig{Env: "local"}}

		require.NoError(t, Migrate(db, cfg))
		assert.False(t, db.Migrator().HasTable(&model.User{}))
	})

	t.Run("refused in production", func(t *testing.T) {
		db := openMemory(t)
		cfg := &config.Config{
			App:      config.AppConfig{Env: "prod"},
			Database: config.DatabaseConfig{IsAutoMigrate: true},
		}

		assert.Error(t, Migrate(db, cfg))
	})

	t.Run("recreates every table", func(t *testing.T) {
		db := openMemory(t)
		cfg := &config.Config{
			App:      config.AppConfig{Env: "local"},
			Database: config.DatabaseConfig{Driver: config.DriverSQLite, IsAutoMigrate: true},
		}
		require.NoError(t, AutoMigrate(db))
		require.NoError(t, db.Create(model.NewUser("a@example.com", "h", "A", "B")).Error)

		require.NoError(t, Migrate(db, cfg))

		for _, m := range model.All() {
			assert.True(t, db.Migrator().HasTable(m), "%T", m)
		}
		var users int64
		require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
		assert.Zero(t, users)
	})
}

func TestWithTransaction(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, AutoMigrate(db))
	ctx := context.Background()

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Create(model.NewUser("rollback@example.com", "h", "R", "B")).Error; err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	require.NoError(t, WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Create(model.NewUser("commit@example.com", "h", "C", "B")).Error
	}))

	var emails []string
	require.NoError(t, db.Model(&model.User{}).Pluck("email", &emails).Error)
	assert.Equal(t, []string{"commit@example.com"}, emails)

	assert.Error(t, WithTransaction(ctx, db, nil))
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	reqLogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).With("request_id", "req-1")
	ctx := logger.WithLogger(context.Background(), reqLogger)
	query := func() (string, int64) { return "SELECT secret FROM app_user", 1 }

	tests := []struct {
		name     string
		gl       *GormLogger
		elapsed  time.Duration
		err      error
		contains []string
		excludes []string
	}{
		{
			name:     "error carries request id",
			gl:       &GormLogger{LogLevel: gormlogger.Error, IgnoreRecordNotFound: true},
			err:      errors.New("boom"),
			contains: []string{"level=ERROR", "request_id=req-1", "component=gorm", "SELECT secret"},
		},
		{
			name:     "record not found ignored",
			gl:       &GormLogger{LogLevel: gormlogger.Info, IgnoreRecordNotFound: true},
			err:      gorm.ErrRecordNotFound,
			contains: []string{"level=DEBUG"},
			excludes: []string{"level=ERROR"},
		},
		{
			name:     "slow query warns without sql when hidden",
			gl:       &GormLogger{LogLevel: gormlogger.Warn, SlowThreshold: time.Millisecond, HideSQL: true},
			elapsed:  50 * time.Millisecond,
			contains: []string{"level=WARN", "Slow SQL query detected"},
			excludes: []string{"SELECT secret"},
		},
		{
			name: "silent logs nothing",
			gl:   &GormLogger{LogLevel: gormlogger.Silent},
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			tt.gl.Trace(ctx, time.Now().Add(-tt.elapsed), query, tt.err)

			out := buf.String()
			if len(tt.contains) == 0 {
				assert.Empty(t, out)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
