package service

// 事件总线主题
const (
	// TopicAssessmentCreated 新互评记录创建成功
	TopicAssessmentCreated = "assessment.created"
	// TopicMembershipChanged 小组成员发生变化（加入/分配/退出）
	TopicMembershipChanged = "membership.changed"
)

// CourseEvent 与课程关联的变更事件载荷
type CourseEvent struct {
	CourseID string
}
