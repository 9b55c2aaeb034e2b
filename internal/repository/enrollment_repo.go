package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/gateway"
)

// EnrollmentRepository 选课记录数据访问接口
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	// GetByStudentAndCourse 不过滤 is_active，退课后的记录也要能查到以便再激活
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error)
	ListActiveByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error)
	Reactivate(ctx context.Context, id string) (*model.Enrollment, error)
	Deactivate(ctx context.Context, id string) error
}

type enrollmentRepo struct {
	gw *gateway.Client
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(gw *gateway.Client) EnrollmentRepository {
	return &enrollmentRepo{gw: gw}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.New().String()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	enrollment.IsActive = true

	result, err := r.gw.Insert(ctx, model.Enrollment{}.TableName(), []model.Enrollment{*enrollment})
	if err != nil {
		return err
	}
	return result.First(enrollment)
}

func (r *enrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.gw.Read(ctx, model.Enrollment{}.TableName(), map[string]string{
		"student_id": studentID,
		"course_id":  courseID,
	}, &enrollments)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, ErrNotFound
	}
	return &enrollments[0], nil
}

func (r *enrollmentRepo) ListActiveByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.gw.Read(ctx, model.Enrollment{}.TableName(), map[string]string{
		"course_id": courseID,
		"is_active": "true",
	}, &enrollments)
	return enrollments, err
}

func (r *enrollmentRepo) Reactivate(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.gw.Update(ctx, model.Enrollment{}.TableName(), "id", id, map[string]interface{}{
		"is_active":   true,
		"enrolled_at": time.Now().UTC(),
	}, &enrollment)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) Deactivate(ctx context.Context, id string) error {
	return r.gw.Update(ctx, model.Enrollment{}.TableName(), "id", id,
		map[string]interface{}{"is_active": false}, nil)
}
