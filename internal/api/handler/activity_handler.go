package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/service"
	"groupmate/backend/pkg/response"
)

// ActivityHandler 评审活动模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
	scoreSvc    service.ScoreService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService, scoreSvc service.ScoreService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc, scoreSvc: scoreSvc}
}

// Create 创建评审活动
// POST /api/v1/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	activity, err := h.activitySvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.Created(c, activity)
}

// Get 活动详情
// GET /api/v1/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	activity, err := h.activitySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, activity)
}

// ListByCourse 课程下的活动列表
// GET /api/v1/courses/:id/activities
func (h *ActivityHandler) ListByCourse(c *gin.Context) {
	activities, err := h.activitySvc.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, activities)
}

// Summary 单活动互评汇总
// GET /api/v1/activities/:id/summary
func (h *ActivityHandler) Summary(c *gin.Context) {
	summary, err := h.scoreSvc.ActivitySummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, summary)
}

func (h *ActivityHandler) handleActivityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 24001, "评审活动不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20001, "课程不存在")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 10003, "无权操作他人课程")
	case handleRemoteError(c, err):
	default:
		response.InternalError(c)
	}
}
