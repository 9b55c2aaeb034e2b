package model

import "time"

// Group 小组 — 对应远程表 groups
// course_id 冗余存储，必须与父类别的 course_id 保持一致
type Group struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	CourseID   string    `json:"course_id"`
	TeacherID  string    `json:"teacher_id"`
	CreatedAt  time.Time `json:"created_at"`
	IsActive   bool      `json:"is_active"`
}

// TableName 指定远程表名
func (Group) TableName() string { return "groups" }
