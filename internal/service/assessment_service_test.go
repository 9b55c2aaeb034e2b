package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"groupmate/backend/internal/dto"
	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/bus"
)

// ── 测试辅助 ──

func setupTestAssessmentService() (AssessmentService, *testRepos, *bus.Bus) {
	repo, mocks := setupTestRepo()
	eventBus := bus.New(zap.NewNop())
	svc := NewAssessmentService(repo, eventBus, zap.NewNop())
	return svc, mocks, eventBus
}

func seedActivity(mocks *testRepos, id, courseID string) {
	mocks.activity.activities = append(mocks.activity.activities, &model.Activity{
		ID: id, Name: "期中互评", CourseID: courseID, TeacherID: "teacher-001", IsActive: true,
	})
}

func validAssessmentReq() *dto.CreateAssessmentRequest {
	return &dto.CreateAssessmentRequest{
		ActivityID:    "act-001",
		GroupID:       "group-1",
		StudentID:     "stu-b",
		Punctuality:   4,
		Contributions: 5,
		Commitment:    3,
		Attitude:      4,
	}
}

// ── Create 测试 ──

func TestAssessmentService_Create_ThenExists(t *testing.T) {
	svc, mocks, _ := setupTestAssessmentService()
	seedActivity(mocks, "act-001", "course-001")
	ctx := context.Background()

	assessment, err := svc.Create(ctx, validAssessmentReq(), "stu-a")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if assessment.ReviewerID != "stu-a" || assessment.StudentID != "stu-b" {
		t.Errorf("评审记录不正确: %+v", assessment)
	}

	exists, err := svc.Exists(ctx, "act-001", "stu-a", "stu-b")
	if err != nil {
		t.Fatalf("Exists 应成功: %v", err)
	}
	if !exists {
		t.Error("提交后 Exists 应为 true")
	}
}

func TestAssessmentService_Create_DuplicateRejected(t *testing.T) {
	svc, mocks, _ := setupTestAssessmentService()
	seedActivity(mocks, "act-001", "course-001")
	ctx := context.Background()

	if _, err := svc.Create(ctx, validAssessmentReq(), "stu-a"); err != nil {
		t.Fatalf("首次提交应成功: %v", err)
	}
	_, err := svc.Create(ctx, validAssessmentReq(), "stu-a")
	if !errors.Is(err, ErrDuplicateReview) {
		t.Errorf("期望 ErrDuplicateReview，实际: %v", err)
	}
}

func TestAssessmentService_Create_SelfReviewRejected(t *testing.T) {
	svc, mocks, _ := setupTestAssessmentService()
	seedActivity(mocks, "act-001", "course-001")

	req := validAssessmentReq()
	req.StudentID = "stu-a"
	_, err := svc.Create(context.Background(), req, "stu-a")
	if !errors.Is(err, ErrSelfReview) {
		t.Errorf("期望 ErrSelfReview，实际: %v", err)
	}
}

func TestAssessmentService_Create_ScoreOutOfScale(t *testing.T) {
	svc, mocks, _ := setupTestAssessmentService()
	seedActivity(mocks, "act-001", "course-001")

	// 量表下界为 2，1 分越界
	req := validAssessmentReq()
	req.Commitment = 1
	_, err := svc.Create(context.Background(), req, "stu-a")
	if !errors.Is(err, ErrScoreOutOfScale) {
		t.Errorf("期望 ErrScoreOutOfScale，实际: %v", err)
	}

	req = validAssessmentReq()
	req.Attitude = 6
	_, err = svc.Create(context.Background(), req, "stu-a")
	if !errors.Is(err, ErrScoreOutOfScale) {
		t.Errorf("期望 ErrScoreOutOfScale，实际: %v", err)
	}
}

func TestAssessmentService_Create_ActivityNotFound(t *testing.T) {
	svc, _, _ := setupTestAssessmentService()

	_, err := svc.Create(context.Background(), validAssessmentReq(), "stu-a")
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("期望 ErrActivityNotFound，实际: %v", err)
	}
}

func TestAssessmentService_Create_PublishesCourseEvent(t *testing.T) {
	svc, mocks, eventBus := setupTestAssessmentService()
	seedActivity(mocks, "act-001", "course-001")

	var got []CourseEvent
	eventBus.Subscribe(TopicAssessmentCreated, func(payload interface{}) {
		if ev, ok := payload.(CourseEvent); ok {
			got = append(got, ev)
		}
	})

	if _, err := svc.Create(context.Background(), validAssessmentReq(), "stu-a"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(got) != 1 || got[0].CourseID != "course-001" {
		t.Errorf("应发布一次课程事件，实际=%+v", got)
	}
}
