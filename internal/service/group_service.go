package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
	"groupmate/backend/pkg/bus"
)

// ── 小组模块业务错误 ──

var (
	ErrGroupNotFound     = errors.New("小组不存在")
	ErrAlreadyInGroup    = errors.New("已是该小组成员")
	ErrNotManualCategory = errors.New("该类别由系统自动分组，不支持自选加入")
	ErrAlreadyInCategory = errors.New("已在该类别的其他小组中")
	ErrGroupFull         = errors.New("小组人数已满")
	ErrNotGroupMember    = errors.New("不是该小组成员")
)

// GroupService 小组业务接口
type GroupService interface {
	// Create 创建小组；random 类别下创建后立即回填未分配学生，
	// 返回回填人数。回填失败向上传播，但已建成的成员记录不回滚。
	Create(ctx context.Context, req *dto.CreateGroupRequest, teacherID string) (*model.Group, int, error)
	GetByID(ctx context.Context, id string) (*model.Group, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.Group, error)
	Members(ctx context.Context, groupID string) ([]model.Membership, error)
	// Join 手动加入小组，仅 manual 类别可用
	Join(ctx context.Context, groupID, studentID string) (*model.Membership, error)
	// Leave 退出小组（软删除成员记录）
	Leave(ctx context.Context, groupID, studentID string) error
}

type groupService struct {
	repo       *repository.Repository
	assignment AssignmentService
	eventBus   *bus.Bus
	logger     *zap.Logger
}

// NewGroupService 创建 GroupService 实例
func NewGroupService(repo *repository.Repository, assignment AssignmentService, eventBus *bus.Bus, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, assignment: assignment, eventBus: eventBus, logger: logger}
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest, teacherID string) (*model.Group, int, error) {
	category, err := s.repo.Category.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrCategoryNotFound
		}
		return nil, 0, err
	}
	if category.TeacherID != teacherID {
		return nil, 0, ErrNotCourseOwner
	}

	// course_id 冗余字段必须与父类别一致
	group := &model.Group{
		Name:       req.Name,
		CategoryID: category.ID,
		CourseID:   category.CourseID,
		TeacherID:  teacherID,
	}
	if err := s.repo.Group.Create(ctx, group); err != nil {
		return nil, 0, err
	}

	s.logger.Info("小组创建成功",
		zap.String("group_id", group.ID),
		zap.String("category_id", category.ID),
	)

	// random 类别下，新组立即吸纳尚未分组的已选课学生
	placed := 0
	if category.IsRandom() {
		placed, err = s.assignment.BackfillOnGroupCreation(ctx, group, category)
		if err != nil {
			return group, placed, err
		}
	}
	return group, placed, nil
}

func (s *groupService) GetByID(ctx context.Context, id string) (*model.Group, error) {
	group, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListByCategory(ctx context.Context, categoryID string) ([]model.Group, error) {
	return s.repo.Group.ListActiveByCategory(ctx, categoryID)
}

func (s *groupService) Members(ctx context.Context, groupID string) ([]model.Membership, error) {
	return s.repo.Membership.ListActiveByGroup(ctx, groupID)
}

// Join 的各项检查为顺序读取，无锁；两个客户端同时通过容量检查时
// 可能出现超员，该竞态由后端约束解决，此处不做乐观并发控制
func (s *groupService) Join(ctx context.Context, groupID, studentID string) (*model.Membership, error) {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.Category.GetByID(ctx, group.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	// 1. 已是目标小组成员
	_, err = s.repo.Membership.GetActiveByUserAndGroup(ctx, studentID, groupID)
	if err == nil {
		return nil, ErrAlreadyInGroup
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 2. 仅 manual 类别允许自选加入
	if !category.IsManual() {
		return nil, ErrNotManualCategory
	}

	// 3. 同类别下已有其他小组的成员记录
	memberships, err := s.repo.Membership.ListActiveByUser(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range memberships {
		other, err := s.repo.Group.GetByID(ctx, memberships[i].GroupID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if other.CategoryID == category.ID {
			return nil, fmt.Errorf("%w：%s", ErrAlreadyInCategory, category.Name)
		}
	}

	// 4. 容量检查
	if capacity, limited := category.Capacity(); limited {
		count, err := s.repo.Membership.CountActiveByGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if count >= capacity {
			return nil, ErrGroupFull
		}
	}

	membership := &model.Membership{UserID: studentID, GroupID: groupID}
	if err := s.repo.Membership.Create(ctx, membership); err != nil {
		return nil, err
	}

	s.eventBus.Publish(TopicMembershipChanged, CourseEvent{CourseID: group.CourseID})
	return membership, nil
}

func (s *groupService) Leave(ctx context.Context, groupID, studentID string) error {
	group, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	membership, err := s.repo.Membership.GetActiveByUserAndGroup(ctx, studentID, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotGroupMember
		}
		return err
	}

	if err := s.repo.Membership.Deactivate(ctx, membership.ID); err != nil {
		return err
	}

	s.eventBus.Publish(TopicMembershipChanged, CourseEvent{CourseID: group.CourseID})
	return nil
}
