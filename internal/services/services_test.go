package services

import (
	"io"
	"testing"
	"time"

	"mtsp/internal/models"
	"mtsp/pkg/jwt"
	"mtsp/pkg/password"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库，唯一约束和事务行为与生产配置一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库只允许单连接，避免连接池各自看到不同的库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.User{}))
	return db
}

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB, *jwt.JWTManager) {
	t.Helper()

	db := newTestDB(t)
	hasher := password.NewHasher(4)
	jwtManager := jwt.NewJWTManager("unit-test-secret-key-at-least-32-chars", 24*time.Hour)
	return NewAuthService(db, hasher, jwtManager, newTestLogger()), db, jwtManager
}
