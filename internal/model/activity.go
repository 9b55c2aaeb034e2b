package model

import "time"

// Activity 评审活动 — 对应远程表 activities
type Activity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CourseID    string    `json:"course_id"`
	TeacherID   string    `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

// TableName 指定远程表名
func (Activity) TableName() string { return "activities" }
