package router

import (
	"time"

	"mtsp/internal/handlers"
	"mtsp/internal/middleware"
	"mtsp/internal/services"
	"mtsp/pkg/config"
	apperrors "mtsp/pkg/errors"
	"mtsp/pkg/jwt"
	"mtsp/pkg/logger"
	"mtsp/pkg/password"
	"mtsp/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 设置路由并完成组件装配
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS(cfg))

	// 自定义校验规则
	if err := handlers.RegisterValidators(); err != nil {
		logger.GetLogger().Errorf("Failed to register validators: %v", err)
	}

	registerRoutes(router, db, cfg)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	hasher := password.NewHasher(cfg.Security.BcryptCost)
	jwtManager := jwt.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.TokenDuration)

	authService := services.NewAuthService(db, hasher, jwtManager, logger.GetLogger())
	userService := services.NewUserService(db, hasher)

	auth := middleware.NewAuthMiddleware(jwtManager)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck(db))
		api.GET("/ping", ping)

		// 认证路由（无需登录）
		authHandler := handlers.NewAuthHandler(authService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register-tenant", authHandler.RegisterTenant) // 租户注册
			authGroup.POST("/login", authHandler.Login)                    // 用户登录
			authGroup.GET("/me", authHandler.Me)                           // 当前用户信息
		}

		// 用户路由（租户内）
		userHandler := handlers.NewUserHandler(userService)
		users := api.Group("/users")
		{
			users.GET("", auth.RequireLogin(), userHandler.List)
			users.POST("", auth.RequireLogin(), auth.RequireTenantAdmin(), userHandler.Create)
		}
	}
}

// healthCheck 健康检查，同时探测数据库可达性
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			response.Error(c, apperrors.CodeServerError, "数据库不可用")
			return
		}

		data := map[string]interface{}{
			"status":    "ok",
			"database":  "connected",
			"timestamp": time.Now(),
			"service":   "MTSP",
			"version":   "1.0.0",
		}
		response.Success(c, data)
	}
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
