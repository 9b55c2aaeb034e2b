package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/gateway"
)

// CategoryRepository 分组类别数据访问接口
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	ListActiveByCourse(ctx context.Context, courseID string) ([]model.Category, error)
	Deactivate(ctx context.Context, id string) error
}

type categoryRepo struct {
	gw *gateway.Client
}

// NewCategoryRepo 创建 CategoryRepository 实例
func NewCategoryRepo(gw *gateway.Client) CategoryRepository {
	return &categoryRepo{gw: gw}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	// 分组方式统一小写存储，读取侧比较仍不区分大小写
	category.GroupingMethod = strings.ToLower(category.GroupingMethod)
	category.IsActive = true

	result, err := r.gw.Insert(ctx, model.Category{}.TableName(), []model.Category{*category})
	if err != nil {
		return err
	}
	return result.First(category)
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var categories []model.Category
	err := r.gw.Read(ctx, model.Category{}.TableName(), map[string]string{"id": id}, &categories)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return &categories[0], nil
}

func (r *categoryRepo) ListActiveByCourse(ctx context.Context, courseID string) ([]model.Category, error) {
	var categories []model.Category
	err := r.gw.Read(ctx, model.Category{}.TableName(), map[string]string{
		"course_id": courseID,
		"is_active": "true",
	}, &categories)
	return categories, err
}

func (r *categoryRepo) Deactivate(ctx context.Context, id string) error {
	return r.gw.Update(ctx, model.Category{}.TableName(), "id", id,
		map[string]interface{}{"is_active": false}, nil)
}
