package dto

// ── 分组类别模块 DTO ──

// CreateCategoryRequest 创建分组类别请求
type CreateCategoryRequest struct {
	CourseID           string `json:"course_id"             binding:"required"`
	Name               string `json:"name"                  binding:"required,min=1,max=100"`
	Description        string `json:"description"           binding:"max=500"`
	GroupingMethod     string `json:"grouping_method"       binding:"required"`
	MaxMembersPerGroup *int   `json:"max_members_per_group" binding:"omitempty,min=1"`
}
