package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/service"
	"groupmate/backend/pkg/response"
)

// CategoryHandler 分组类别模块 HTTP 处理器
type CategoryHandler struct {
	categorySvc service.CategoryService
	groupSvc    service.GroupService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(categorySvc service.CategoryService, groupSvc service.GroupService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc, groupSvc: groupSvc}
}

// Create 创建分组类别
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	category, err := h.categorySvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.Created(c, category)
}

// Get 类别详情
// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categorySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.OK(c, category)
}

// ListByCourse 课程下的类别列表
// GET /api/v1/courses/:id/categories
func (h *CategoryHandler) ListByCourse(c *gin.Context) {
	categories, err := h.categorySvc.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.OK(c, categories)
}

// ListGroups 类别下的小组列表
// GET /api/v1/categories/:id/groups
func (h *CategoryHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupSvc.ListByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.OK(c, groups)
}

func (h *CategoryHandler) handleCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 21001, "分组类别不存在")
	case errors.Is(err, service.ErrBadGroupingMethod):
		response.BadRequest(c, 21002, "分组方式必须为 manual 或 random")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20001, "课程不存在")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 10003, "无权操作他人课程")
	case handleRemoteError(c, err):
	default:
		response.InternalError(c)
	}
}
