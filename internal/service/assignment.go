package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
	"groupmate/backend/pkg/bus"
)

// AssignmentService 自动分组业务接口
// 两个操作均为首位适配（first-fit），不做统计意义上的随机：
// 保证的是"同一类别下学生不被重复分组"与"小组不超过配置容量"，
// 分配结果在存储返回顺序固定时完全确定。
type AssignmentService interface {
	// AssignOnEnrollment 选课成功后，把学生分配进课程内每个
	// random 类别的一个有空位的小组；无空位的类别静默跳过。
	// 幂等：已分配过的类别不会重复分配。
	AssignOnEnrollment(ctx context.Context, courseID, studentID string) error
	// BackfillOnGroupCreation 在 random 类别下新建小组后，把课程内
	// 尚未进入任何小组的已选课学生按选课顺序补进新组，直至容量用尽。
	// 返回实际补入的人数。
	BackfillOnGroupCreation(ctx context.Context, group *model.Group, category *model.Category) (int, error)
}

type assignmentService struct {
	repo     *repository.Repository
	eventBus *bus.Bus
	logger   *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, eventBus *bus.Bus, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, eventBus: eventBus, logger: logger}
}

func (s *assignmentService) AssignOnEnrollment(ctx context.Context, courseID, studentID string) error {
	// 1. 课程内 grouping_method 为 random 的类别（比较不区分大小写）
	categories, err := s.repo.Category.ListActiveByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	var randomCategories []model.Category
	for i := range categories {
		if categories[i].IsRandom() {
			randomCategories = append(randomCategories, categories[i])
		}
	}
	if len(randomCategories) == 0 {
		return nil
	}

	// 2. 学生已被分配的类别集合：现有成员记录 → 小组 → 类别
	assigned, err := s.assignedCategories(ctx, studentID)
	if err != nil {
		return err
	}

	// 3. 按返回顺序逐类别做首位适配
	placed := 0
	for i := range randomCategories {
		category := &randomCategories[i]
		if assigned[category.ID] {
			continue
		}

		groups, err := s.repo.Group.ListActiveByCategory(ctx, category.ID)
		if err != nil {
			return err
		}

		capacity, limited := category.Capacity()
		for j := range groups {
			// 容量按候选小组现查，不做全局缓存
			count, err := s.repo.Membership.CountActiveByGroup(ctx, groups[j].ID)
			if err != nil {
				return err
			}
			if limited && count >= capacity {
				continue
			}

			membership := &model.Membership{UserID: studentID, GroupID: groups[j].ID}
			if err := s.repo.Membership.Create(ctx, membership); err != nil {
				return err
			}
			assigned[category.ID] = true
			placed++
			break
		}
		// 类别内无任何空位时静默跳过，学生在该类别保持未分配
	}

	if placed > 0 {
		s.eventBus.Publish(TopicMembershipChanged, CourseEvent{CourseID: courseID})
		s.logger.Info("选课后自动分组完成",
			zap.String("course_id", courseID),
			zap.String("student_id", studentID),
			zap.Int("placed", placed),
		)
	}
	return nil
}

// assignedCategories 枚举学生当前的激活成员记录，解析为类别 ID 集合
func (s *assignmentService) assignedCategories(ctx context.Context, studentID string) (map[string]bool, error) {
	memberships, err := s.repo.Membership.ListActiveByUser(ctx, studentID)
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]bool)
	for i := range memberships {
		group, err := s.repo.Group.GetByID(ctx, memberships[i].GroupID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // 悬空成员记录，忽略
			}
			return nil, err
		}
		assigned[group.CategoryID] = true
	}
	return assigned, nil
}

func (s *assignmentService) BackfillOnGroupCreation(ctx context.Context, group *model.Group, category *model.Category) (int, error) {
	// 1. 剩余容量；容量有限且已满时不做任何事
	capacity, limited := category.Capacity()
	remaining := 0
	if limited {
		count, err := s.repo.Membership.CountActiveByGroup(ctx, group.ID)
		if err != nil {
			return 0, err
		}
		remaining = capacity - count
		if remaining <= 0 {
			return 0, nil
		}
	}

	// 2. 已进入课程内任意小组（不限本类别）的学生集合
	courseGroups, err := s.repo.Group.ListActiveByCourse(ctx, group.CourseID)
	if err != nil {
		return 0, err
	}
	assigned := make(map[string]bool)
	for i := range courseGroups {
		members, err := s.repo.Membership.ListActiveByGroup(ctx, courseGroups[i].ID)
		if err != nil {
			return 0, err
		}
		for j := range members {
			assigned[members[j].UserID] = true
		}
	}

	// 3. 课程的激活选课记录
	enrollments, err := s.repo.Enrollment.ListActiveByCourse(ctx, group.CourseID)
	if err != nil {
		return 0, err
	}
	if len(enrollments) == 0 {
		return 0, nil
	}

	// 4. 按选课返回顺序补入，容量用尽或名单耗尽即停
	placed := 0
	for i := range enrollments {
		if limited && placed >= remaining {
			break
		}
		studentID := enrollments[i].StudentID
		if assigned[studentID] {
			continue
		}

		membership := &model.Membership{UserID: studentID, GroupID: group.ID}
		if err := s.repo.Membership.Create(ctx, membership); err != nil {
			return placed, err
		}
		assigned[studentID] = true
		placed++
	}

	if placed > 0 {
		s.eventBus.Publish(TopicMembershipChanged, CourseEvent{CourseID: group.CourseID})
		s.logger.Info("新建小组回填完成",
			zap.String("group_id", group.ID),
			zap.String("category_id", category.ID),
			zap.Int("placed", placed),
		)
	}
	return placed, nil
}
