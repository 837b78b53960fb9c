package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	communityRepo "zoomies/internal/domain/community/repository"
	"zoomies/internal/pkg/config"
	"zoomies/internal/pkg/middleware"
	"zoomies/internal/pkg/registry"
	"zoomies/internal/pkg/worker"
	"zoomies/pkg/database"
	"zoomies/pkg/logger"

	// 模块通过 init() 自注册
	_ "zoomies/internal/domain/community"
	_ "zoomies/internal/domain/feed"
	_ "zoomies/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger.Init(config.GlobalConfig.Server.Mode)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	// 复用 gorm 的连接池给 sqlx，聚合查询直接走原生 SQL
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	sdb := sqlx.NewDb(sqlDB, "pgx")

	// 活跃度异步写入池
	cfg := config.GlobalConfig
	activity := worker.NewActivityPool(
		communityRepo.NewCommunityRepository(db, sdb),
		cfg.Worker.Num,
		cfg.Worker.BufferSize,
	)
	activity.Start()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := registry.InitModules(&registry.ModuleContext{
		DB:       db,
		SQLX:     sdb,
		Redis:    rdb,
		Router:   r,
		Activity: activity,
	}); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 优雅退出：先停 HTTP，再关 worker 池让剩余任务落库
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	activity.Stop()
	logger.Log.Info("Server exited")
}
