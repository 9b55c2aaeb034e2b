package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/gateway"
)

// GroupRepository 小组数据访问接口
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	ListActiveByCategory(ctx context.Context, categoryID string) ([]model.Group, error)
	ListActiveByCourse(ctx context.Context, courseID string) ([]model.Group, error)
	Deactivate(ctx context.Context, id string) error
}

type groupRepo struct {
	gw *gateway.Client
}

// NewGroupRepo 创建 GroupRepository 实例
func NewGroupRepo(gw *gateway.Client) GroupRepository {
	return &groupRepo{gw: gw}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	group.IsActive = true

	result, err := r.gw.Insert(ctx, model.Group{}.TableName(), []model.Group{*group})
	if err != nil {
		return err
	}
	return result.First(group)
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var groups []model.Group
	err := r.gw.Read(ctx, model.Group{}.TableName(), map[string]string{"id": id}, &groups)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrNotFound
	}
	return &groups[0], nil
}

func (r *groupRepo) ListActiveByCategory(ctx context.Context, categoryID string) ([]model.Group, error) {
	var groups []model.Group
	err := r.gw.Read(ctx, model.Group{}.TableName(), map[string]string{
		"category_id": categoryID,
		"is_active":   "true",
	}, &groups)
	return groups, err
}

func (r *groupRepo) ListActiveByCourse(ctx context.Context, courseID string) ([]model.Group, error) {
	var groups []model.Group
	err := r.gw.Read(ctx, model.Group{}.TableName(), map[string]string{
		"course_id": courseID,
		"is_active": "true",
	}, &groups)
	return groups, err
}

func (r *groupRepo) Deactivate(ctx context.Context, id string) error {
	return r.gw.Update(ctx, model.Group{}.TableName(), "id", id,
		map[string]interface{}{"is_active": false}, nil)
}
