package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Berkayssy/leave-management-system/internal/config"
	"github.com/Berkayssy/leave-management-system/internal/leave"
	"github.com/Berkayssy/leave-management-system/internal/shared/connection"
	"github.com/Berkayssy/leave-management-system/internal/user"
)

// BuildApp connects the infrastructure and registers every module's routes
// on the router.
func BuildApp(router *gin.Engine, cfg config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DSN(), 5)
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(&user.User{}, &leave.Leave{}); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}

	return registerModules(router, db, gormDB, rdb, cfg)
}
