package dto

// ── 互评模块 DTO ──

// CreateAssessmentRequest 提交互评请求
// 四项指标量表为 {2,3,4,5}，业务层二次校验
type CreateAssessmentRequest struct {
	ActivityID    string `json:"activity_id"   binding:"required"`
	GroupID       string `json:"group_id"      binding:"required"`
	StudentID     string `json:"student_id"    binding:"required"`
	Punctuality   int    `json:"punctuality"   binding:"required,min=2,max=5"`
	Contributions int    `json:"contributions" binding:"required,min=2,max=5"`
	Commitment    int    `json:"commitment"    binding:"required,min=2,max=5"`
	Attitude      int    `json:"attitude"      binding:"required,min=2,max=5"`
}
