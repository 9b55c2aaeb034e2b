package model

import (
	"strings"
	"time"
)

// 分组方式取值（比较时不区分大小写）
const (
	GroupingManual = "manual" // 学生自选小组
	GroupingRandom = "random" // 系统自动分配
)

// Category 分组类别 — 对应远程表 categories
// 归属于唯一课程；max_members_per_group 为空或 ≤0 表示不限人数
type Category struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	CourseID           string    `json:"course_id"`
	TeacherID          string    `json:"teacher_id"`
	GroupingMethod     string    `json:"grouping_method"`
	MaxMembersPerGroup *int      `json:"max_members_per_group,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	IsActive           bool      `json:"is_active"`
}

// TableName 指定远程表名
func (Category) TableName() string { return "categories" }

// IsRandom 分组方式是否为自动分配
func (c *Category) IsRandom() bool {
	return strings.EqualFold(c.GroupingMethod, GroupingRandom)
}

// IsManual 分组方式是否为学生自选
func (c *Category) IsManual() bool {
	return strings.EqualFold(c.GroupingMethod, GroupingManual)
}

// Capacity 单组容量；第二个返回值为 false 表示不限人数
func (c *Category) Capacity() (int, bool) {
	if c.MaxMembersPerGroup == nil || *c.MaxMembersPerGroup <= 0 {
		return 0, false
	}
	return *c.MaxMembersPerGroup, true
}
