package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
	"groupmate/backend/pkg/bus"
)

// ── 互评模块业务错误 ──

var (
	ErrScoreOutOfScale = errors.New("评分必须在 2-5 之间")
	ErrSelfReview      = errors.New("不能评审自己")
	ErrDuplicateReview = errors.New("已评审过该成员")
)

// AssessmentService 互评业务接口
type AssessmentService interface {
	// Create 提交互评。唯一性是调用侧前置检查：同一
	// (活动, 评审人, 被评人) 三元组已存在记录时拒绝提交。
	Create(ctx context.Context, req *dto.CreateAssessmentRequest, reviewerID string) (*model.Assessment, error)
	Exists(ctx context.Context, activityID, reviewerID, studentID string) (bool, error)
}

type assessmentService struct {
	repo     *repository.Repository
	eventBus *bus.Bus
	logger   *zap.Logger
}

// NewAssessmentService 创建 AssessmentService 实例
func NewAssessmentService(repo *repository.Repository, eventBus *bus.Bus, logger *zap.Logger) AssessmentService {
	return &assessmentService{repo: repo, eventBus: eventBus, logger: logger}
}

func (s *assessmentService) Create(ctx context.Context, req *dto.CreateAssessmentRequest, reviewerID string) (*model.Assessment, error) {
	for _, score := range []int{req.Punctuality, req.Contributions, req.Commitment, req.Attitude} {
		if !model.ValidScore(score) {
			return nil, ErrScoreOutOfScale
		}
	}
	if req.StudentID == reviewerID {
		return nil, ErrSelfReview
	}

	activity, err := s.repo.Activity.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	exists, err := s.repo.Assessment.Exists(ctx, activity.ID, reviewerID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	assessment := &model.Assessment{
		ActivityID:    activity.ID,
		GroupID:       req.GroupID,
		ReviewerID:    reviewerID,
		StudentID:     req.StudentID,
		Punctuality:   req.Punctuality,
		Contributions: req.Contributions,
		Commitment:    req.Commitment,
		Attitude:      req.Attitude,
	}
	if err := s.repo.Assessment.Create(ctx, assessment); err != nil {
		return nil, err
	}

	s.eventBus.Publish(TopicAssessmentCreated, CourseEvent{CourseID: activity.CourseID})
	s.logger.Info("互评提交成功",
		zap.String("activity_id", activity.ID),
		zap.String("reviewer_id", reviewerID),
		zap.String("student_id", req.StudentID),
	)
	return assessment, nil
}

func (s *assessmentService) Exists(ctx context.Context, activityID, reviewerID, studentID string) (bool, error) {
	return s.repo.Assessment.Exists(ctx, activityID, reviewerID, studentID)
}
