package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
)

// ── 选课模块业务错误 ──

var (
	ErrInvalidJoinCode = errors.New("加入码无效或课程已停用")
	ErrOwnCourseEnroll = errors.New("不能加入自己创建的课程")
	ErrAlreadyEnrolled = errors.New("已加入该课程")
	ErrNotEnrolled     = errors.New("未加入该课程")
)

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	// EnrollByJoinCode 通过加入码选课
	// 退课后的旧记录原地再激活（同一 id），不产生重复行；
	// 选课成功后尽力执行自动分组，分组失败不影响选课结果。
	EnrollByJoinCode(ctx context.Context, joinCode, studentID string) (*model.Enrollment, error)
	// Withdraw 退课（软删除选课记录）
	Withdraw(ctx context.Context, courseID, studentID string) error
	ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error)
}

type enrollmentService struct {
	repo       *repository.Repository
	assignment AssignmentService
	logger     *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, assignment AssignmentService, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, assignment: assignment, logger: logger}
}

func (s *enrollmentService) EnrollByJoinCode(ctx context.Context, joinCode, studentID string) (*model.Enrollment, error) {
	joinCode = strings.ToUpper(strings.TrimSpace(joinCode))
	if joinCode == "" {
		return nil, ErrInvalidJoinCode
	}

	course, err := s.repo.Course.GetActiveByJoinCode(ctx, joinCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidJoinCode
		}
		return nil, err
	}
	if course.TeacherID == studentID {
		return nil, ErrOwnCourseEnroll
	}

	enrollment, err := s.repo.Enrollment.GetByStudentAndCourse(ctx, studentID, course.ID)
	switch {
	case err == nil && enrollment.IsActive:
		return nil, ErrAlreadyEnrolled
	case err == nil:
		// 退课后重新加入：原记录再激活
		enrollment, err = s.repo.Enrollment.Reactivate(ctx, enrollment.ID)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		enrollment = &model.Enrollment{StudentID: studentID, CourseID: course.ID}
		if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.logger.Info("选课成功",
		zap.String("course_id", course.ID),
		zap.String("student_id", studentID),
	)

	// 选课后的自动分组为尽力而为：任何失败只记录告警，不影响选课结果
	if err := s.assignment.AssignOnEnrollment(ctx, course.ID, studentID); err != nil {
		s.logger.Warn("选课后自动分组失败",
			zap.String("course_id", course.ID),
			zap.String("student_id", studentID),
			zap.Error(err),
		)
	}

	return enrollment, nil
}

func (s *enrollmentService) Withdraw(ctx context.Context, courseID, studentID string) error {
	enrollment, err := s.repo.Enrollment.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotEnrolled
		}
		return err
	}
	if !enrollment.IsActive {
		return ErrNotEnrolled
	}
	return s.repo.Enrollment.Deactivate(ctx, enrollment.ID)
}

func (s *enrollmentService) ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	return s.repo.Enrollment.ListActiveByCourse(ctx, courseID)
}
