package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groupmate/backend/config"
	"groupmate/backend/internal/api/handler"
	"groupmate/backend/internal/api/middleware"
	"groupmate/backend/pkg/jwt"
	"groupmate/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.POST("", middleware.RoleAuth("teacher"), h.Course.Create)
				courses.GET("", middleware.RoleAuth("teacher"), h.Course.List)
				courses.POST("/enroll", middleware.RoleAuth("student"), h.Course.Enroll)
				courses.GET("/:id", h.Course.Get)
				courses.DELETE("/:id", middleware.RoleAuth("teacher"), h.Course.Deactivate)
				courses.DELETE("/:id/enrollment", middleware.RoleAuth("student"), h.Course.Withdraw)
				courses.GET("/:id/enrollments", middleware.RoleAuth("teacher"), h.Course.ListEnrollments)
				courses.GET("/:id/categories", h.Category.ListByCourse)
				courses.GET("/:id/activities", h.Activity.ListByCourse)
				courses.GET("/:id/summary", middleware.RoleAuth("teacher"), h.Course.Summary)
				courses.GET("/:id/summary/export", middleware.RoleAuth("teacher"), h.Course.ExportSummary)
			}

			// 分组类别模块
			categories := authorized.Group("/categories")
			{
				categories.POST("", middleware.RoleAuth("teacher"), h.Category.Create)
				categories.GET("/:id", h.Category.Get)
				categories.GET("/:id/groups", h.Category.ListGroups)
			}

			// 小组模块
			groups := authorized.Group("/groups")
			{
				groups.POST("", middleware.RoleAuth("teacher"), h.Group.Create)
				groups.GET("/:id", h.Group.Get)
				groups.GET("/:id/members", h.Group.Members)
				groups.POST("/:id/join", middleware.RoleAuth("student"), h.Group.Join)
				groups.POST("/:id/leave", middleware.RoleAuth("student"), h.Group.Leave)
			}

			// 评审活动模块
			activities := authorized.Group("/activities")
			{
				activities.POST("", middleware.RoleAuth("teacher"), h.Activity.Create)
				activities.GET("/:id", h.Activity.Get)
				activities.GET("/:id/summary", middleware.RoleAuth("teacher"), h.Activity.Summary)
			}

			// 互评模块
			assessments := authorized.Group("/assessments")
			{
				assessments.POST("", middleware.RoleAuth("student"), h.Assessment.Create)
				assessments.GET("/exists", middleware.RoleAuth("student"), h.Assessment.Exists)
			}
		}
	}

	return r
}
