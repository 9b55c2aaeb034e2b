package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses []*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.ID == "" {
		course.ID = fmt.Sprintf("course-%03d", len(m.courses)+1)
	}
	course.IsActive = true
	m.courses = append(m.courses, course)
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockCourseRepo) GetActiveByJoinCode(_ context.Context, joinCode string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.IsActive && c.JoinCode == joinCode {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) CountActiveByTeacher(_ context.Context, teacherID string) (int, error) {
	count := 0
	for _, c := range m.courses {
		if c.IsActive && c.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

func (m *mockCourseRepo) Deactivate(_ context.Context, id string) error {
	for _, c := range m.courses {
		if c.ID == id {
			c.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories []*model.Category
	listErr    error
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *model.Category) error {
	if category.ID == "" {
		category.ID = fmt.Sprintf("cat-%03d", len(m.categories)+1)
	}
	category.GroupingMethod = strings.ToLower(category.GroupingMethod)
	category.IsActive = true
	m.categories = append(m.categories, category)
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockCategoryRepo) ListActiveByCourse(_ context.Context, courseID string) ([]model.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Category
	for _, c := range m.categories {
		if c.IsActive && c.CourseID == courseID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCategoryRepo) Deactivate(_ context.Context, id string) error {
	for _, c := range m.categories {
		if c.ID == id {
			c.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups []*model.Group
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	if group.ID == "" {
		group.ID = fmt.Sprintf("group-%03d", len(m.groups)+1)
	}
	group.IsActive = true
	m.groups = append(m.groups, group)
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	for _, g := range m.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockGroupRepo) ListActiveByCategory(_ context.Context, categoryID string) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		if g.IsActive && g.CategoryID == categoryID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGroupRepo) ListActiveByCourse(_ context.Context, courseID string) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		if g.IsActive && g.CourseID == courseID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGroupRepo) Deactivate(_ context.Context, id string) error {
	for _, g := range m.groups {
		if g.ID == id {
			g.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments []*model.Enrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = fmt.Sprintf("enroll-%03d", len(m.enrollments)+1)
	}
	enrollment.EnrolledAt = time.Now().UTC()
	enrollment.IsActive = true
	m.enrollments = append(m.enrollments, enrollment)
	return nil
}

func (m *mockEnrollmentRepo) GetByStudentAndCourse(_ context.Context, studentID, courseID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockEnrollmentRepo) ListActiveByCourse(_ context.Context, courseID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.IsActive && e.CourseID == courseID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) Reactivate(_ context.Context, id string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.ID == id {
			e.IsActive = true
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockEnrollmentRepo) Deactivate(_ context.Context, id string) error {
	for _, e := range m.enrollments {
		if e.ID == id {
			e.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

// ── Mock MembershipRepository ──

type mockMembershipRepo struct {
	memberships []*model.Membership
	createErr   error
}

func newMockMembershipRepo() *mockMembershipRepo {
	return &mockMembershipRepo{}
}

func (m *mockMembershipRepo) Create(_ context.Context, membership *model.Membership) error {
	if m.createErr != nil {
		return m.createErr
	}
	if membership.ID == "" {
		membership.ID = fmt.Sprintf("member-%03d", len(m.memberships)+1)
	}
	membership.JoinedAt = time.Now().UTC()
	membership.IsActive = true
	m.memberships = append(m.memberships, membership)
	return nil
}

func (m *mockMembershipRepo) ListActiveByUser(_ context.Context, userID string) ([]model.Membership, error) {
	var result []model.Membership
	for _, mb := range m.memberships {
		if mb.IsActive && mb.UserID == userID {
			result = append(result, *mb)
		}
	}
	return result, nil
}

func (m *mockMembershipRepo) ListActiveByGroup(_ context.Context, groupID string) ([]model.Membership, error) {
	var result []model.Membership
	for _, mb := range m.memberships {
		if mb.IsActive && mb.GroupID == groupID {
			result = append(result, *mb)
		}
	}
	return result, nil
}

func (m *mockMembershipRepo) CountActiveByGroup(_ context.Context, groupID string) (int, error) {
	count := 0
	for _, mb := range m.memberships {
		if mb.IsActive && mb.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (m *mockMembershipRepo) GetActiveByUserAndGroup(_ context.Context, userID, groupID string) (*model.Membership, error) {
	for _, mb := range m.memberships {
		if mb.IsActive && mb.UserID == userID && mb.GroupID == groupID {
			return mb, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockMembershipRepo) Deactivate(_ context.Context, id string) error {
	for _, mb := range m.memberships {
		if mb.ID == id {
			mb.IsActive = false
			return nil
		}
	}
	return repository.ErrNotFound
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	activities []*model.Activity
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{}
}

func (m *mockActivityRepo) Create(_ context.Context, activity *model.Activity) error {
	if activity.ID == "" {
		activity.ID = fmt.Sprintf("act-%03d", len(m.activities)+1)
	}
	activity.IsActive = true
	m.activities = append(m.activities, activity)
	return nil
}

func (m *mockActivityRepo) GetByID(_ context.Context, id string) (*model.Activity, error) {
	for _, a := range m.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockActivityRepo) ListActiveByCourse(_ context.Context, courseID string) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.IsActive && a.CourseID == courseID {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock AssessmentRepository ──

type mockAssessmentRepo struct {
	assessments []*model.Assessment
	listCalls   int // ListByActivity 被调用的次数
	listErr     error
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{}
}

func (m *mockAssessmentRepo) Create(_ context.Context, assessment *model.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = fmt.Sprintf("assess-%03d", len(m.assessments)+1)
	}
	assessment.CreatedAt = time.Now().UTC()
	m.assessments = append(m.assessments, assessment)
	return nil
}

func (m *mockAssessmentRepo) ListByActivity(_ context.Context, activityID string) ([]model.Assessment, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Assessment
	for _, a := range m.assessments {
		if a.ActivityID == activityID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssessmentRepo) Exists(_ context.Context, activityID, reviewerID, studentID string) (bool, error) {
	for _, a := range m.assessments {
		if a.ActivityID == activityID && a.ReviewerID == reviewerID && a.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// ── 聚合辅助 ──

type testRepos struct {
	course     *mockCourseRepo
	category   *mockCategoryRepo
	group      *mockGroupRepo
	enrollment *mockEnrollmentRepo
	membership *mockMembershipRepo
	activity   *mockActivityRepo
	assessment *mockAssessmentRepo
}

func setupTestRepo() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		course:     newMockCourseRepo(),
		category:   newMockCategoryRepo(),
		group:      newMockGroupRepo(),
		enrollment: newMockEnrollmentRepo(),
		membership: newMockMembershipRepo(),
		activity:   newMockActivityRepo(),
		assessment: newMockAssessmentRepo(),
	}
	repo := &repository.Repository{
		Course:     mocks.course,
		Category:   mocks.category,
		Group:      mocks.group,
		Enrollment: mocks.enrollment,
		Membership: mocks.membership,
		Activity:   mocks.activity,
		Assessment: mocks.assessment,
	}
	return repo, mocks
}
