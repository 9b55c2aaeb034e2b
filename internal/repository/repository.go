package repository

import (
	"errors"

	"groupmate/backend/config"
	"groupmate/backend/pkg/gateway"
)

// ErrNotFound 按条件未查到记录
var ErrNotFound = errors.New("记录不存在")

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course     CourseRepository
	Category   CategoryRepository
	Group      GroupRepository
	Enrollment EnrollmentRepository
	Membership MembershipRepository
	Activity   ActivityRepository
	Assessment AssessmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(gw *gateway.Client, cfg *config.Config) *Repository {
	return &Repository{
		Course:     NewCourseRepo(gw),
		Category:   NewCategoryRepo(gw),
		Group:      NewGroupRepo(gw),
		Enrollment: NewEnrollmentRepo(gw),
		Membership: NewMembershipRepo(gw),
		Activity:   NewActivityRepo(gw),
		Assessment: NewAssessmentRepo(gw, cfg.Feature.TolerateAssessmentRead500),
	}
}
