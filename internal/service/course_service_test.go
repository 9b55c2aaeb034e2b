package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"groupmate/backend/config"
	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestCourseService() (CourseService, *testRepos) {
	repo, mocks := setupTestRepo()
	cfg := &config.Config{
		Limits: config.LimitsConfig{
			MaxActiveCourses: 3,
			JoinCodeLength:   6,
		},
	}
	svc := NewCourseService(cfg, repo, zap.NewNop())
	return svc, mocks
}

// ── Create 测试 ──

func TestCourseService_Create_Success(t *testing.T) {
	svc, _ := setupTestCourseService()

	course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Name:        "软件工程",
		Description: "2026 春季",
	}, "teacher-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if course.TeacherID != "teacher-001" {
		t.Errorf("期望 teacher_id=teacher-001，实际=%s", course.TeacherID)
	}
	if len(course.JoinCode) != 6 {
		t.Errorf("期望加入码长度=6，实际=%d (%s)", len(course.JoinCode), course.JoinCode)
	}
	if course.JoinCode != strings.ToUpper(course.JoinCode) {
		t.Errorf("加入码应为大写，实际=%s", course.JoinCode)
	}
}

func TestCourseService_Create_ActiveLimitReached(t *testing.T) {
	svc, mocks := setupTestCourseService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		mocks.course.Create(ctx, &model.Course{Name: "旧课程", TeacherID: "teacher-001"})
	}

	_, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "第四门课"}, "teacher-001")
	if !errors.Is(err, ErrCourseLimitReached) {
		t.Errorf("期望 ErrCourseLimitReached，实际: %v", err)
	}
}

func TestCourseService_Create_DeactivatedNotCounted(t *testing.T) {
	svc, mocks := setupTestCourseService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		mocks.course.Create(ctx, &model.Course{Name: "旧课程", TeacherID: "teacher-001"})
	}
	mocks.course.Deactivate(ctx, mocks.course.courses[0].ID)

	if _, err := svc.Create(ctx, &dto.CreateCourseRequest{Name: "新课程"}, "teacher-001"); err != nil {
		t.Errorf("停用课程不应计入上限: %v", err)
	}
}

// ── GetByID / Deactivate 测试 ──

func TestCourseService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.GetByID(context.Background(), "course-missing")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestCourseService_Deactivate_NotOwner(t *testing.T) {
	svc, mocks := setupTestCourseService()
	ctx := context.Background()
	mocks.course.Create(ctx, &model.Course{Name: "软件工程", TeacherID: "teacher-001"})

	err := svc.Deactivate(ctx, mocks.course.courses[0].ID, "teacher-other")
	if !errors.Is(err, ErrNotCourseOwner) {
		t.Errorf("期望 ErrNotCourseOwner，实际: %v", err)
	}
}

func TestCourseService_Deactivate_Success(t *testing.T) {
	svc, mocks := setupTestCourseService()
	ctx := context.Background()
	mocks.course.Create(ctx, &model.Course{Name: "软件工程", TeacherID: "teacher-001"})

	if err := svc.Deactivate(ctx, mocks.course.courses[0].ID, "teacher-001"); err != nil {
		t.Fatalf("Deactivate 应成功: %v", err)
	}
	if mocks.course.courses[0].IsActive {
		t.Error("课程应已停用")
	}
}

// ── joinCodeAt 测试 ──

func TestJoinCodeAt_DerivedFromTimestamp(t *testing.T) {
	// 36 进制大写，取末尾 6 位
	code := joinCodeAt(time.UnixMilli(1756400000000), 6)
	if len(code) != 6 {
		t.Errorf("期望长度=6，实际=%d (%s)", len(code), code)
	}
	for _, r := range code {
		if !((r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z')) {
			t.Errorf("加入码应仅含大写 36 进制字符，实际=%s", code)
			break
		}
	}

	// 相邻毫秒派生出不同的加入码
	next := joinCodeAt(time.UnixMilli(1756400000001), 6)
	if code == next {
		t.Errorf("相邻时间戳应派生不同加入码，均为=%s", code)
	}
}
