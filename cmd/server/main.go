package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"groupmate/backend/config"
	"groupmate/backend/internal/api/handler"
	"groupmate/backend/internal/api/router"
	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
	"groupmate/backend/internal/service"
	"groupmate/backend/internal/state"
	"groupmate/backend/pkg/bus"
	"groupmate/backend/pkg/gateway"
	"groupmate/backend/pkg/jwt"
	applogger "groupmate/backend/pkg/logger"
	"groupmate/backend/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("gateway", cfg.Gateway.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 远程表存储网关
	gw := gateway.NewClient(&cfg.Gateway, gateway.StaticToken(cfg.Gateway.ServiceToken), logger)

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单功能将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 依赖注入: Gateway → Repository → Service → Handler
	repo := repository.NewRepository(gw, cfg)
	eventBus := bus.New(logger)
	svc := service.NewService(cfg, repo, eventBus, logger)

	// 7. 课程汇总缓存：刷新时重算全课程互评汇总；
	// 新互评或成员变动事件触发失效
	summaries := state.NewSummaryCache(cfg.Cache.SummaryTTL, func(ctx context.Context, courseID string) (*model.CourseSummary, error) {
		activities, err := svc.Activity.ListByCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		activityIDs := make([]string, 0, len(activities))
		for i := range activities {
			activityIDs = append(activityIDs, activities[i].ID)
		}
		return svc.Score.CourseSummary(ctx, activityIDs)
	}, logger)

	invalidate := func(payload interface{}) {
		if ev, ok := payload.(service.CourseEvent); ok {
			summaries.Invalidate(ev.CourseID)
		}
	}
	eventBus.Subscribe(service.TopicAssessmentCreated, invalidate)
	eventBus.Subscribe(service.TopicMembershipChanged, invalidate)

	h := handler.NewHandler(svc, summaries, rdb)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
