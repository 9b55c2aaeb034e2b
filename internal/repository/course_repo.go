package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/gateway"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetActiveByJoinCode(ctx context.Context, joinCode string) (*model.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error)
	CountActiveByTeacher(ctx context.Context, teacherID string) (int, error)
	Deactivate(ctx context.Context, id string) error
}

type courseRepo struct {
	gw *gateway.Client
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(gw *gateway.Client) CourseRepository {
	return &courseRepo{gw: gw}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	course.IsActive = true

	result, err := r.gw.Insert(ctx, model.Course{}.TableName(), []model.Course{*course})
	if err != nil {
		return err
	}
	return result.First(course)
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var courses []model.Course
	err := r.gw.Read(ctx, model.Course{}.TableName(), map[string]string{"id": id}, &courses)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNotFound
	}
	return &courses[0], nil
}

func (r *courseRepo) GetActiveByJoinCode(ctx context.Context, joinCode string) (*model.Course, error) {
	var courses []model.Course
	err := r.gw.Read(ctx, model.Course{}.TableName(), map[string]string{
		"join_code": joinCode,
		"is_active": "true",
	}, &courses)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNotFound
	}
	return &courses[0], nil
}

func (r *courseRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.gw.Read(ctx, model.Course{}.TableName(), map[string]string{
		"teacher_id": teacherID,
	}, &courses)
	return courses, err
}

func (r *courseRepo) CountActiveByTeacher(ctx context.Context, teacherID string) (int, error) {
	var courses []model.Course
	err := r.gw.Read(ctx, model.Course{}.TableName(), map[string]string{
		"teacher_id": teacherID,
		"is_active":  "true",
	}, &courses)
	if err != nil {
		return 0, err
	}
	return len(courses), nil
}

func (r *courseRepo) Deactivate(ctx context.Context, id string) error {
	return r.gw.Update(ctx, model.Course{}.TableName(), "id", id,
		map[string]interface{}{"is_active": false}, nil)
}
