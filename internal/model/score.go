package model

// ScoreAverages 评分均值值对象 — 四项指标与总评各保留 2 位小数
// 永不持久化，每次都由原始评审记录重新计算
type ScoreAverages struct {
	Punctuality   float64 `json:"punctuality"`
	Contributions float64 `json:"contributions"`
	Commitment    float64 `json:"commitment"`
	Attitude      float64 `json:"attitude"`
	Overall       float64 `json:"overall"`
}

// StudentActivityReviewStats 单个活动中某学生作为被评人的统计
type StudentActivityReviewStats struct {
	StudentID     string        `json:"student_id"`
	ReceivedCount int           `json:"received_count"` // 收到的评审数
	Averages      ScoreAverages `json:"averages"`
}

// GroupActivityStats 单个活动中某小组的统计
// 评审记录缺失 group_id 时归入 GroupID 为空串的桶，不会被丢弃
type GroupActivityStats struct {
	GroupID          string                       `json:"group_id"`
	AssessmentsCount int                          `json:"assessments_count"`
	Averages         ScoreAverages                `json:"averages"`
	Students         []StudentActivityReviewStats `json:"students"`
}

// ActivitySummary 单个活动的汇总
type ActivitySummary struct {
	ActivityID string               `json:"activity_id"`
	Averages   ScoreAverages        `json:"averages"`
	Groups     []GroupActivityStats `json:"groups"`
}

// StudentCrossActivityStats 跨活动的学生统计
type StudentCrossActivityStats struct {
	StudentID           string        `json:"student_id"`
	AssessmentsReceived int           `json:"assessments_received"`
	Averages            ScoreAverages `json:"averages"`
}

// GroupCrossActivityStats 跨活动的小组统计
type GroupCrossActivityStats struct {
	GroupID          string        `json:"group_id"`
	AssessmentsCount int           `json:"assessments_count"`
	Averages         ScoreAverages `json:"averages"`
}

// CourseSummary 课程级汇总（跨多个活动）
type CourseSummary struct {
	Students []StudentCrossActivityStats `json:"students"`
	Groups   []GroupCrossActivityStats   `json:"groups"`
}
