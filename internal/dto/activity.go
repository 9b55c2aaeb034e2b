package dto

// ── 评审活动模块 DTO ──

// CreateActivityRequest 创建评审活动请求
type CreateActivityRequest struct {
	CourseID    string `json:"course_id"   binding:"required"`
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}
