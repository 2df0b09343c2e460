package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"grants-governance/internal/config"
	"grants-governance/internal/models"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	log := zap.NewNop()
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:?cache=shared"}, log)
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db, log))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.ApplicationDraft{}))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}

func TestGormLogsFailuresAtWarnOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: "file:gormlog?mode=memory&cache=shared"}, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, zap.NewNop()))

	gormLogs := func() *observer.ObservedLogs { return logs.FilterLoggerName("gorm") }

	// successful statements and missing rows stay quiet
	var user models.User
	require.ErrorIs(t, db.First(&user, 12345).Error, gorm.ErrRecordNotFound)
	require.NoError(t, db.Create(&models.User{WalletAddress: "0x0000000000000000000000000000000000000001"}).Error)
	assert.Zero(t, gormLogs().Len())

	assert.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	require.Equal(t, 1, gormLogs().Len())
	entry := gormLogs().All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "no_such_table")
}
