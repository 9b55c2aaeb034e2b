package model

import (
	"math"
	"time"
)

// 评分量表：四项指标均取 {2,3,4,5}
const (
	ScoreMin = 2
	ScoreMax = 5
)

// Assessment 互评记录 — 对应远程表 assessments
// 创建后不可变更，无更新与删除路径；
// 每个 (activity_id, reviewer_id, student_id) 三元组至多一条记录。
type Assessment struct {
	ID            string    `json:"id"`
	ActivityID    string    `json:"activity_id"`
	GroupID       string    `json:"group_id"`
	ReviewerID    string    `json:"reviewer_id"`
	StudentID     string    `json:"student_id"` // 被评审的学生
	Punctuality   int       `json:"punctuality"`
	Contributions int       `json:"contributions"`
	Commitment    int       `json:"commitment"`
	Attitude      int       `json:"attitude"`
	Overall       float64   `json:"-"` // 由存储的定点值在读取时还原
	CreatedAt     time.Time `json:"created_at"`
}

// TableName 指定远程表名
func (Assessment) TableName() string { return "assessments" }

// ValidScore 检查单项评分是否在量表范围内
func ValidScore(score int) bool {
	return score >= ScoreMin && score <= ScoreMax
}

// RawOverall 单条记录的总评：四项指标的均值，不做任何舍入
func (a *Assessment) RawOverall() float64 {
	return float64(a.Punctuality+a.Contributions+a.Commitment+a.Attitude) / 4
}

// EncodeOverall 总评的存储编码：先舍入到 1 位小数，再乘 10 取整
// （定点表示，隐含一位小数）
func EncodeOverall(raw float64) int {
	rounded := math.Round(raw*10) / 10
	return int(math.Round(rounded * 10))
}

// DecodeOverall 从存储的定点值还原总评
// 字段缺失（stored 为 nil）时按四项指标均值现算
func (a *Assessment) DecodeOverall(stored *int) float64 {
	if stored == nil {
		return a.RawOverall()
	}
	return float64(*stored) / 10
}
