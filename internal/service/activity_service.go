package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
)

// ── 评审活动模块业务错误 ──

var ErrActivityNotFound = errors.New("评审活动不存在")

// ActivityService 评审活动业务接口
type ActivityService interface {
	Create(ctx context.Context, req *dto.CreateActivityRequest, teacherID string) (*model.Activity, error)
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Activity, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) Create(ctx context.Context, req *dto.CreateActivityRequest, teacherID string) (*model.Activity, error) {
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, ErrNotCourseOwner
	}

	activity := &model.Activity{
		Name:        req.Name,
		Description: req.Description,
		CourseID:    course.ID,
		TeacherID:   teacherID,
	}
	if err := s.repo.Activity.Create(ctx, activity); err != nil {
		return nil, err
	}

	s.logger.Info("评审活动创建成功",
		zap.String("activity_id", activity.ID),
		zap.String("course_id", activity.CourseID),
	)
	return activity, nil
}

func (s *activityService) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	activity, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}

func (s *activityService) ListByCourse(ctx context.Context, courseID string) ([]model.Activity, error) {
	return s.repo.Activity.ListActiveByCourse(ctx, courseID)
}
