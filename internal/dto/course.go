package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// EnrollRequest 通过加入码选课请求
type EnrollRequest struct {
	JoinCode string `json:"join_code" binding:"required,min=4,max=12"`
}
