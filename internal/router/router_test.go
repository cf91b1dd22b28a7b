package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mtsp/internal/models"
	"mtsp/pkg/config"
	apperrors "mtsp/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.User{}))

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", Mode: gin.TestMode},
		JWT: config.JWTConfig{
			SecretKey:     "unit-test-secret-key-at-least-32-chars",
			TokenDuration: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12,
		},
	}

	return SetupRouter(db, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *envelope {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return &env
}

func registerAcme(t *testing.T, r *gin.Engine) {
	t.Helper()
	env := doJSON(t, r, http.MethodPost, "/api/v1/auth/register-tenant", "", gin.H{
		"tenantName":    "Acme",
		"subdomain":     "acme",
		"adminEmail":    "admin@acme.io",
		"adminPassword": "Secr3t!Pass",
		"adminFullName": "Ada Admin",
	})
	require.Equal(t, apperrors.CodeSuccess, env.Code)
}

func loginAcme(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	env := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":           email,
		"password":        password,
		"tenantSubdomain": "acme",
	})
	require.Equal(t, apperrors.CodeSuccess, env.Code)

	var data struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	require.Equal(t, int64(86400), data.ExpiresIn)
	return data.Token
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r := newTestRouter(t)

	registerAcme(t, r)
	token := loginAcme(t, r, "admin@acme.io", "Secr3t!Pass")

	env := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, apperrors.CodeSuccess, env.Code)

	var me struct {
		Email    string `json:"email"`
		FullName string `json:"fullName"`
		Role     string `json:"role"`
		IsActive bool   `json:"isActive"`
		Tenant   *struct {
			Subdomain        string `json:"subdomain"`
			SubscriptionPlan string `json:"subscriptionPlan"`
			MaxUsers         int    `json:"maxUsers"`
			MaxProjects      int    `json:"maxProjects"`
		} `json:"tenant"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "admin@acme.io", me.Email)
	assert.Equal(t, "tenant_admin", me.Role)
	assert.True(t, me.IsActive)
	require.NotNil(t, me.Tenant)
	assert.Equal(t, "acme", me.Tenant.Subdomain)
	assert.Equal(t, "free", me.Tenant.SubscriptionPlan)
	assert.Equal(t, 5, me.Tenant.MaxUsers)
	assert.Equal(t, 3, me.Tenant.MaxProjects)
}

func TestRegisterTenantRejectsBadSubdomain(t *testing.T) {
	r := newTestRouter(t)

	env := doJSON(t, r, http.MethodPost, "/api/v1/auth/register-tenant", "", gin.H{
		"tenantName":    "Acme",
		"subdomain":     "Not_A_Slug",
		"adminEmail":    "admin@acme.io",
		"adminPassword": "Secr3t!Pass",
		"adminFullName": "Ada Admin",
	})
	assert.Equal(t, apperrors.CodeInvalidParam, env.Code)
}

func TestRegisterTenantDuplicateSubdomainHTTP(t *testing.T) {
	r := newTestRouter(t)

	registerAcme(t, r)
	env := doJSON(t, r, http.MethodPost, "/api/v1/auth/register-tenant", "", gin.H{
		"tenantName":    "Other",
		"subdomain":     "acme",
		"adminEmail":    "other@acme.io",
		"adminPassword": "Secr3t!Pass",
		"adminFullName": "Other Admin",
	})
	assert.Equal(t, apperrors.CodeConflict, env.Code)
}

func TestLoginWrongPasswordHTTP(t *testing.T) {
	r := newTestRouter(t)

	registerAcme(t, r)
	env := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":           "admin@acme.io",
		"password":        "wrong-password",
		"tenantSubdomain": "acme",
	})
	assert.Equal(t, apperrors.CodeUnauthorized, env.Code)
}

func TestMeWithoutToken(t *testing.T) {
	r := newTestRouter(t)

	env := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, apperrors.CodeUnauthorized, env.Code)
}

func TestUserManagementWithinTenant(t *testing.T) {
	r := newTestRouter(t)

	registerAcme(t, r)
	adminToken := loginAcme(t, r, "admin@acme.io", "Secr3t!Pass")

	// 管理员创建普通成员
	env := doJSON(t, r, http.MethodPost, "/api/v1/users", adminToken, gin.H{
		"email":    "bob@acme.io",
		"password": "B0b!Passw0rd",
		"fullName": "Bob Member",
	})
	require.Equal(t, apperrors.CodeSuccess, env.Code)

	// 同租户内邮箱重复
	env = doJSON(t, r, http.MethodPost, "/api/v1/users", adminToken, gin.H{
		"email":    "bob@acme.io",
		"password": "B0b!Passw0rd",
		"fullName": "Bob Again",
	})
	assert.Equal(t, apperrors.CodeConflict, env.Code)

	// 成员无权创建用户
	memberToken := loginAcme(t, r, "bob@acme.io", "B0b!Passw0rd")
	env = doJSON(t, r, http.MethodPost, "/api/v1/users", memberToken, gin.H{
		"email":    "carol@acme.io",
		"password": "C4rol!Pass",
		"fullName": "Carol",
	})
	assert.Equal(t, apperrors.CodeForbidden, env.Code)

	// 成员可以查看本租户用户列表
	env = doJSON(t, r, http.MethodGet, "/api/v1/users", memberToken, nil)
	require.Equal(t, apperrors.CodeSuccess, env.Code)

	var users []struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 2)
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	env := doJSON(t, r, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)
}
