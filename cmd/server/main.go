package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-inventory/internal/core/cache"
	"go-gin-inventory/internal/core/config"
	"go-gin-inventory/internal/core/database"
	"go-gin-inventory/internal/core/logger"
	"go-gin-inventory/internal/core/server"
	"go-gin-inventory/internal/core/session"
	"go-gin-inventory/internal/domain"
	"go-gin-inventory/internal/repo"
	"go-gin-inventory/internal/service"
	"go-gin-inventory/internal/transport/http/handler"
	"go-gin-inventory/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Supplier{}, &domain.Product{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// redis：会话 + 统计缓存
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := rc.RDB.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}
	log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))

	// 依赖
	users := repo.NewUserRepo(db)
	suppliers := repo.NewSupplierRepo(db)
	products := repo.NewProductRepo(db)

	sessions := session.NewManager(
		session.NewRedisStore(rc.RDB),
		users,
		time.Duration(cfg.Session.TTLHours)*time.Hour,
		time.Duration(cfg.Session.TouchAfterMin)*time.Minute,
	)

	authSvc := service.NewAuthService(users)
	invSvc := service.NewInventoryService(suppliers, products, rc,
		time.Duration(cfg.Session.StatsCacheSec)*time.Second)

	deps := router.Deps{
		Sessions:   sessions,
		CookieName: cfg.Session.CookieName,
		Auth: handler.NewAuthHandler(authSvc, sessions, cfg.Session.CookieName,
			cfg.IsProduction(), !cfg.IsProduction(), log),
		Home:      handler.NewHomeHandler(invSvc),
		API:       handler.NewAPIHandler(invSvc),
		Suppliers: handler.NewSupplierHandler(invSvc),
		Products:  handler.NewProductHandler(invSvc),
	}
	r := router.NewEngine(log, deps)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("inventory server starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("env", cfg.App.Env),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("inventory server start FAILED", zap.Error(err))
		}
	}()
	log.Info("inventory server started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("inventory server stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
