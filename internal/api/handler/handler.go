package handler

import (
	"groupmate/backend/internal/service"
	"groupmate/backend/internal/state"
	"groupmate/backend/pkg/redis"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Course     *CourseHandler
	Category   *CategoryHandler
	Group      *GroupHandler
	Activity   *ActivityHandler
	Assessment *AssessmentHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, summaries *state.SummaryCache, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(rdb),
		Course:     NewCourseHandler(svc.Course, svc.Enrollment, svc.Export, summaries),
		Category:   NewCategoryHandler(svc.Category, svc.Group),
		Group:      NewGroupHandler(svc.Group),
		Activity:   NewActivityHandler(svc.Activity, svc.Score),
		Assessment: NewAssessmentHandler(svc.Assessment),
	}
}
