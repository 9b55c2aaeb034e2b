package model

import "time"

// Enrollment 选课记录 — 对应远程表 enrollments
// 每个 (student_id, course_id) 至多一条语义上的"当前"记录；
// 退课后重新加入是对原记录的再激活，不产生重复行
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	IsActive   bool      `json:"is_active"`
}

// TableName 指定远程表名
func (Enrollment) TableName() string { return "enrollments" }
