package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/service"
	"groupmate/backend/pkg/response"
)

// GroupHandler 小组模块 HTTP 处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建 GroupHandler
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// Create 创建小组
// POST /api/v1/groups
// random 类别下创建即触发未分组学生回填，响应附带回填人数
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	group, backfilled, err := h.groupSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}
	response.Created(c, dto.CreateGroupResponse{Group: group, Backfilled: backfilled})
}

// Get 小组详情
// GET /api/v1/groups/:id
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groupSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleGroupError(c, err)
		return
	}
	response.OK(c, group)
}

// Members 小组成员列表
// GET /api/v1/groups/:id/members
func (h *GroupHandler) Members(c *gin.Context) {
	members, err := h.groupSvc.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleGroupError(c, err)
		return
	}
	response.OK(c, members)
}

// Join 加入小组（仅 manual 类别）
// POST /api/v1/groups/:id/join
func (h *GroupHandler) Join(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	membership, err := h.groupSvc.Join(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleGroupError(c, err)
		return
	}
	response.Created(c, membership)
}

// Leave 退出小组
// POST /api/v1/groups/:id/leave
func (h *GroupHandler) Leave(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.groupSvc.Leave(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleGroupError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *GroupHandler) handleGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 22001, "小组不存在")
	case errors.Is(err, service.ErrAlreadyInGroup):
		response.Conflict(c, 22002, "已是该小组成员")
	case errors.Is(err, service.ErrNotManualCategory):
		response.Conflict(c, 22003, "该类别由系统自动分组，不支持自选加入")
	case errors.Is(err, service.ErrAlreadyInCategory):
		// 错误中带有类别名，原样透出便于客户端提示
		response.Conflict(c, 22004, err.Error())
	case errors.Is(err, service.ErrGroupFull):
		response.Conflict(c, 22005, "小组人数已满")
	case errors.Is(err, service.ErrNotGroupMember):
		response.NotFound(c, 22006, "不是该小组成员")
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 21001, "分组类别不存在")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 10003, "无权操作他人课程")
	case handleRemoteError(c, err):
	default:
		response.InternalError(c)
	}
}
