package dto

import "groupmate/backend/internal/model"

// ── 小组模块 DTO ──

// CreateGroupRequest 创建小组请求
type CreateGroupRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Name       string `json:"name"        binding:"required,min=1,max=100"`
}

// CreateGroupResponse 创建小组响应
// random 类别下附带自动回填的人数
type CreateGroupResponse struct {
	Group      *model.Group `json:"group"`
	Backfilled int          `json:"backfilled"`
}
