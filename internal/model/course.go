package model

import "time"

// Course 课程 — 对应远程表 courses
// 加入码在创建时由时间戳派生，同一时刻至多有一个激活课程持有同一加入码
type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JoinCode    string    `json:"join_code"`
	TeacherID   string    `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`
}

// TableName 指定远程表名
func (Course) TableName() string { return "courses" }
