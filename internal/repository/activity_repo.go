package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/gateway"
)

// ActivityRepository 评审活动数据访问接口
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	ListActiveByCourse(ctx context.Context, courseID string) ([]model.Activity, error)
}

type activityRepo struct {
	gw *gateway.Client
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(gw *gateway.Client) ActivityRepository {
	return &activityRepo{gw: gw}
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	activity.IsActive = true

	result, err := r.gw.Insert(ctx, model.Activity{}.TableName(), []model.Activity{*activity})
	if err != nil {
		return err
	}
	return result.First(activity)
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	var activities []model.Activity
	err := r.gw.Read(ctx, model.Activity{}.TableName(), map[string]string{"id": id}, &activities)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, ErrNotFound
	}
	return &activities[0], nil
}

func (r *activityRepo) ListActiveByCourse(ctx context.Context, courseID string) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.gw.Read(ctx, model.Activity{}.TableName(), map[string]string{
		"course_id": courseID,
		"is_active": "true",
	}, &activities)
	return activities, err
}
