package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"groupmate/backend/config"
	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrCourseLimitReached = errors.New("激活课程数已达上限")
	ErrNotCourseOwner     = errors.New("无权操作他人课程")
	ErrJoinCodeExhausted  = errors.New("加入码生成失败，请稍后重试")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, teacherID string) (*model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error)
	Deactivate(ctx context.Context, id, teacherID string) error
}

type courseService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{cfg: cfg, repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, teacherID string) (*model.Course, error) {
	// 同一教师的激活课程数有上限
	active, err := s.repo.Course.CountActiveByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if active >= s.cfg.Limits.MaxActiveCourses {
		return nil, ErrCourseLimitReached
	}

	now := time.Now()
	joinCode, err := s.deriveJoinCode(ctx, now)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
		JoinCode:    joinCode,
		TeacherID:   teacherID,
		CreatedAt:   now.UTC(),
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("课程创建成功",
		zap.String("course_id", course.ID),
		zap.String("join_code", course.JoinCode),
	)
	return course, nil
}

// deriveJoinCode 由创建时间戳派生加入码
// 与当前激活课程冲突时顺延时间戳重试，确保加入码同一时刻唯一解析
func (s *courseService) deriveJoinCode(ctx context.Context, t time.Time) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := joinCodeAt(t.Add(time.Duration(attempt)*time.Millisecond), s.cfg.Limits.JoinCodeLength)
		_, err := s.repo.Course.GetActiveByJoinCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		// 已被占用，换下一个时间戳
	}
	return "", ErrJoinCodeExhausted
}

// joinCodeAt 时间戳毫秒值的 36 进制大写表示，取末尾 length 位
func joinCodeAt(t time.Time, length int) string {
	s := strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
	if len(s) > length {
		s = s[len(s)-length:]
	}
	return s
}

func (s *courseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error) {
	return s.repo.Course.ListByTeacher(ctx, teacherID)
}

func (s *courseService) Deactivate(ctx context.Context, id, teacherID string) error {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course.TeacherID != teacherID {
		return ErrNotCourseOwner
	}
	return s.repo.Course.Deactivate(ctx, id)
}
