package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
)

// ── 分组类别模块业务错误 ──

var (
	ErrCategoryNotFound  = errors.New("分组类别不存在")
	ErrBadGroupingMethod = errors.New("分组方式必须为 manual 或 random")
)

// CategoryService 分组类别业务接口
type CategoryService interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest, teacherID string) (*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Category, error)
}

type categoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest, teacherID string) (*model.Category, error) {
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

	category := &model.Category{
		Name:               req.Name,
		Description:        req.Description,
		CourseID:           course.ID,
		TeacherID:          teacherID,
		GroupingMethod:     req.GroupingMethod,
		MaxMembersPerGroup: req.MaxMembersPerGroup,
	}
	if !category.IsManual() && !category.IsRandom() {
		return nil, ErrBadGroupingMethod
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("分组类别创建成功",
		zap.String("category_id", category.ID),
		zap.String("course_id", category.CourseID),
		zap.String("grouping_method", category.GroupingMethod),
	)
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListByCourse(ctx context.Context, courseID string) ([]model.Category, error) {
	return s.repo.Category.ListActiveByCourse(ctx, courseID)
}
