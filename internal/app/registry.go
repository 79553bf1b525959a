package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/Berkayssy/leave-management-system/internal/auth"
	"github.com/Berkayssy/leave-management-system/internal/config"
	"github.com/Berkayssy/leave-management-system/internal/leave"
	"github.com/Berkayssy/leave-management-system/internal/middleware"
	"github.com/Berkayssy/leave-management-system/internal/policy"
	"github.com/Berkayssy/leave-management-system/internal/user"
)

func registerModules(router *gin.Engine, db *sql.DB, gormDB *gorm.DB, rdb *redis.Client, cfg config.Config) error {
	logger := zap.L()

	pol, err := policy.New()
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)

	authService := auth.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	userService := user.NewService(db, userRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, pol, rdb, logger)

	authHandler := auth.NewHandler(authService, logger)
	userHandler := user.NewHandler(userService, logger)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb, logger)
	managerHandler := leave.NewManagerHandler(leaveService, logger)

	authRequired := middleware.AuthRequired(authService)
	requireManager := middleware.RequireRole(pol.CanDecide, "Requires manager or admin role")
	requireAdmin := middleware.RequireRole(pol.CanListUsers, "Requires admin role")
	rateLimit := middleware.RateLimitByIP(rate.Limit(1), 10)
	idempotency := middleware.Idempotency(rdb)

	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, authHandler, authRequired, rateLimit)
	user.RegisterRoutes(api, userHandler, authHandler.Signup, authRequired, requireAdmin)
	leave.RegisterRoutes(api, leaveHandler, managerHandler, authRequired, requireManager, idempotency)

	return nil
}
