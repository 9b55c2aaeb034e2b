package model

import "time"

// Membership 小组成员 — 对应远程表 memberships
// 同一类别下每个学生至多一条激活成员记录（在加入/分配时校验，存储层不强制）
type Membership struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	GroupID  string    `json:"group_id"`
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `json:"is_active"`
}

// TableName 指定远程表名
func (Membership) TableName() string { return "memberships" }
