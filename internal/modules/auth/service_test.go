package auth

import (
	"testing"

	"github.com/hyolog/core/internal/config"
	"github.com/hyolog/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}))

	return NewService(db, "test-secret", zap.NewNop()), db
}

func TestSeedAdminCreatesUserOnce(t *testing.T) {
	svc, db := newTestService(t)
	seed := config.AdminSeedConfig{
		Email:       "Admin@Example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Hyo",
	}

	require.NoError(t, svc.SeedAdmin(seed))
	require.NoError(t, svc.SeedAdmin(seed))

	var users []models.UserModel
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, "Hyo", users[0].DisplayName)
	assert.NotEqual(t, "hunter2hunter2", users[0].Password)
}

func TestSeedAdminSkipsWhenUnconfigured(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, svc.SeedAdmin(config.AdminSeedConfig{}))

	var count int64
	require.NoError(t, db.Model(&models.UserModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.SeedAdmin(config.AdminSeedConfig{
		Email:    "admin@example.com",
		Password: "hunter2hunter2",
	}))

	token, user, err := svc.Login("admin@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin@example.com", user.Email)

	_, _, err = svc.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login("nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
