package service

import (
	"go.uber.org/zap"

	"groupmate/backend/config"
	"groupmate/backend/internal/repository"
	"groupmate/backend/pkg/bus"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Course     CourseService
	Category   CategoryService
	Group      GroupService
	Enrollment EnrollmentService
	Activity   ActivityService
	Assessment AssessmentService
	Score      ScoreService
	Assignment AssignmentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	eventBus *bus.Bus,
	logger *zap.Logger,
) *Service {
	assignment := NewAssignmentService(repo, eventBus, logger)
	score := NewScoreService(repo, logger)

	return &Service{
		Course:     NewCourseService(cfg, repo, logger),
		Category:   NewCategoryService(repo, logger),
		Group:      NewGroupService(repo, assignment, eventBus, logger),
		Enrollment: NewEnrollmentService(repo, assignment, logger),
		Activity:   NewActivityService(repo, logger),
		Assessment: NewAssessmentService(repo, eventBus, logger),
		Score:      score,
		Assignment: assignment,
		Export:     NewExportService(repo, score, logger),
	}
}
