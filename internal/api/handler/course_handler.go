package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/service"
	"groupmate/backend/internal/state"
	"groupmate/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc     service.CourseService
	enrollmentSvc service.EnrollmentService
	exportSvc     service.ExportService
	summaries     *state.SummaryCache
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(
	courseSvc service.CourseService,
	enrollmentSvc service.EnrollmentService,
	exportSvc service.ExportService,
	summaries *state.SummaryCache,
) *CourseHandler {
	return &CourseHandler{
		courseSvc:     courseSvc,
		enrollmentSvc: enrollmentSvc,
		exportSvc:     exportSvc,
		summaries:     summaries,
	}
}

// Create 创建课程
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, course)
}

// List 我创建的课程列表
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListByTeacher(c.Request.Context(), userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, courses)
}

// Get 课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, course)
}

// Deactivate 停用课程
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Deactivate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.courseSvc.Deactivate(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, nil)
}

// Enroll 通过加入码选课
// POST /api/v1/courses/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentSvc.EnrollByJoinCode(c.Request.Context(), req.JoinCode, userID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Withdraw 退课
// DELETE /api/v1/courses/:id/enrollment
func (h *CourseHandler) Withdraw(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.enrollmentSvc.Withdraw(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListEnrollments 课程学生名单
// GET /api/v1/courses/:id/enrollments
func (h *CourseHandler) ListEnrollments(c *gin.Context) {
	enrollments, err := h.enrollmentSvc.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, enrollments)
}

// Summary 课程级互评汇总（带缓存，?force=true 绕过）
// GET /api/v1/courses/:id/summary
func (h *CourseHandler) Summary(c *gin.Context) {
	courseID := c.Param("id")
	force := c.Query("force") == "true"

	summary, err := h.summaries.Get(c.Request.Context(), courseID, force)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, summary)
}

// ExportSummary 导出课程级互评汇总 Excel
// GET /api/v1/courses/:id/summary/export
func (h *CourseHandler) ExportSummary(c *gin.Context) {
	courseID := c.Param("id")

	f, err := h.exportSvc.CourseSummaryWorkbook(c.Request.Context(), courseID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	filename := fmt.Sprintf("课程互评汇总_%s.xlsx", time.Now().Format("20060102"))
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20001, "课程不存在")
	case errors.Is(err, service.ErrCourseLimitReached):
		response.Conflict(c, 20002, "激活课程数已达上限")
	case errors.Is(err, service.ErrJoinCodeExhausted):
		response.Conflict(c, 20003, "加入码生成失败，请稍后重试")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 10003, "无权操作他人课程")
	case errors.Is(err, service.ErrInvalidJoinCode):
		response.BadRequest(c, 23001, "加入码无效或课程已停用")
	case errors.Is(err, service.ErrOwnCourseEnroll):
		response.Conflict(c, 23002, "不能加入自己创建的课程")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 23003, "已加入该课程")
	case errors.Is(err, service.ErrNotEnrolled):
		response.NotFound(c, 23004, "未加入该课程")
	case handleRemoteError(c, err):
	default:
		response.InternalError(c)
	}
}
