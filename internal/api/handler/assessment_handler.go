package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/service"
	"groupmate/backend/pkg/response"
)

// AssessmentHandler 互评模块 HTTP 处理器
type AssessmentHandler struct {
	assessmentSvc service.AssessmentService
}

// NewAssessmentHandler 创建 AssessmentHandler
func NewAssessmentHandler(assessmentSvc service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Create 提交互评
// POST /api/v1/assessments
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.Created(c, assessment)
}

// Exists 是否已评审过指定成员
// GET /api/v1/assessments/exists?activity_id=&student_id=
func (h *AssessmentHandler) Exists(c *gin.Context) {
	activityID := c.Query("activity_id")
	studentID := c.Query("student_id")
	if activityID == "" || studentID == "" {
		response.BadRequest(c, 10001, "activity_id 和 student_id 不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exists, err := h.assessmentSvc.Exists(c.Request.Context(), activityID, userID, studentID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}
	response.OK(c, gin.H{"exists": exists})
}

func (h *AssessmentHandler) handleAssessmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScoreOutOfScale):
		response.BadRequest(c, 25001, "评分必须在 2-5 之间")
	case errors.Is(err, service.ErrSelfReview):
		response.BadRequest(c, 25002, "不能评审自己")
	case errors.Is(err, service.ErrDuplicateReview):
		response.Conflict(c, 25003, "已评审过该成员")
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 24001, "评审活动不存在")
	case handleRemoteError(c, err):
	default:
		response.InternalError(c)
	}
}
