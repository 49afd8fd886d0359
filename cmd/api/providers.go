package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/order"
	"github.com/xiebiao/bookshelf/internal/domain/permission"
	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/jwt"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Server *http.Server
}

func newApp(cfg *config.Config, server *http.Server) *App {
	return &App{Config: cfg, Server: server}
}

// provideDB 数据库连接,cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := sqldb.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis redis.enabled为false时client为nil
func provideRedis(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return client, cleanup, nil
}

// provideJWTManager 从配置创建JWT管理器
// jwt.NewManager只需要JWT相关的配置,Wire无法自动从Config中提取
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func providePasswordHasher(cfg *config.Config) user.PasswordHasher {
	return user.NewPasswordHasher(cfg.Security.BcryptCost)
}

// providePurchaseChecker 购买记录由订单仓储查询
func providePurchaseChecker(repo order.Repository) permission.PurchaseChecker {
	return repo
}

func provideRateLimiter(cfg *config.Config) *middleware.IPRateLimiter {
	return middleware.NewIPRateLimiter(cfg.Security.TokenRateLimit, cfg.Security.TokenRateBurst)
}

func provideServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	logger.L().Info("HTTP服务已配置", zap.String("mode", cfg.Server.Mode))
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
