package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/gateway"
)

// MembershipRepository 小组成员数据访问接口
type MembershipRepository interface {
	Create(ctx context.Context, membership *model.Membership) error
	ListActiveByUser(ctx context.Context, userID string) ([]model.Membership, error)
	ListActiveByGroup(ctx context.Context, groupID string) ([]model.Membership, error)
	CountActiveByGroup(ctx context.Context, groupID string) (int, error)
	GetActiveByUserAndGroup(ctx context.Context, userID, groupID string) (*model.Membership, error)
	Deactivate(ctx context.Context, id string) error
}

type membershipRepo struct {
	gw *gateway.Client
}

// NewMembershipRepo 创建 MembershipRepository 实例
func NewMembershipRepo(gw *gateway.Client) MembershipRepository {
	return &membershipRepo{gw: gw}
}

func (r *membershipRepo) Create(ctx context.Context, membership *model.Membership) error {
	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}
	membership.IsActive = true

	result, err := r.gw.Insert(ctx, model.Membership{}.TableName(), []model.Membership{*membership})
	if err != nil {
		return err
	}
	return result.First(membership)
}

func (r *membershipRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.gw.Read(ctx, model.Membership{}.TableName(), map[string]string{
		"user_id":   userID,
		"is_active": "true",
	}, &memberships)
	return memberships, err
}

func (r *membershipRepo) ListActiveByGroup(ctx context.Context, groupID string) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.gw.Read(ctx, model.Membership{}.TableName(), map[string]string{
		"group_id":  groupID,
		"is_active": "true",
	}, &memberships)
	return memberships, err
}

// CountActiveByGroup 查询小组当前激活成员数
// 容量判断前必须按组现查，不做全局缓存
func (r *membershipRepo) CountActiveByGroup(ctx context.Context, groupID string) (int, error) {
	memberships, err := r.ListActiveByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return len(memberships), nil
}

func (r *membershipRepo) GetActiveByUserAndGroup(ctx context.Context, userID, groupID string) (*model.Membership, error) {
	var memberships []model.Membership
	err := r.gw.Read(ctx, model.Membership{}.TableName(), map[string]string{
		"user_id":   userID,
		"group_id":  groupID,
		"is_active": "true",
	}, &memberships)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, ErrNotFound
	}
	return &memberships[0], nil
}

func (r *membershipRepo) Deactivate(ctx context.Context, id string) error {
	return r.gw.Update(ctx, model.Membership{}.TableName(), "id", id,
		map[string]interface{}{"is_active": false}, nil)
}
