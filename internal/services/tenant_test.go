package services

import (
	"testing"

	apperrors "mtsp/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantCreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	service := NewTenantService(db)

	tenant, err := service.Create("Acme", "acme", "", 0, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, tenant.ID)
	assert.Equal(t, "free", tenant.SubscriptionPlan)
	assert.Equal(t, 5, tenant.MaxUsers)
	assert.Equal(t, 3, tenant.MaxProjects)

	found, err := service.GetBySubdomain("acme")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, found.ID)

	byID, err := service.GetByID(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", byID.Subdomain)
}

func TestTenantDuplicateSubdomain(t *testing.T) {
	db := newTestDB(t)
	service := NewTenantService(db)

	_, err := service.Create("Acme", "acme", "", 0, 0)
	require.NoError(t, err)

	_, err = service.Create("Other Acme", "acme", "", 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateSubdomain)

	// 存储中只有一个使用该子域名的租户
	var count int64
	db.Table("tenants").Where("subdomain = ?", "acme").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestTenantLookupIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	service := NewTenantService(db)

	_, err := service.Create("Acme", "acme", "", 0, 0)
	require.NoError(t, err)

	// 精确匹配策略：大小写不同视为不存在
	_, err = service.GetBySubdomain("Acme")
	assert.ErrorIs(t, err, apperrors.ErrTenantNotFound)
}

func TestTenantNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewTenantService(db)

	_, err := service.GetBySubdomain("nope")
	assert.ErrorIs(t, err, apperrors.ErrTenantNotFound)

	_, err = service.GetByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrTenantNotFound)
}
