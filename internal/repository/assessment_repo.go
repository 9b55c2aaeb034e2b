package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"groupmate/backend/internal/model"
	"groupmate/backend/pkg/gateway"
)

// AssessmentRepository 互评记录数据访问接口
// 互评记录不可变更：只有创建与读取，没有更新与删除
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	ListByActivity(ctx context.Context, activityID string) ([]model.Assessment, error)
	Exists(ctx context.Context, activityID, reviewerID, studentID string) (bool, error)
}

// assessmentRecord 互评记录的线上格式
// overall_score 以定点整数存储（隐含一位小数），读取时除以 10 还原
type assessmentRecord struct {
	ID            string    `json:"id"`
	ActivityID    string    `json:"activity_id"`
	GroupID       string    `json:"group_id"`
	ReviewerID    string    `json:"reviewer_id"`
	StudentID     string    `json:"student_id"`
	Punctuality   int       `json:"punctuality"`
	Contributions int       `json:"contributions"`
	Commitment    int       `json:"commitment"`
	Attitude      int       `json:"attitude"`
	OverallScore  *int      `json:"overall_score,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (rec *assessmentRecord) toModel() model.Assessment {
	a := model.Assessment{
		ID:            rec.ID,
		ActivityID:    rec.ActivityID,
		GroupID:       rec.GroupID,
		ReviewerID:    rec.ReviewerID,
		StudentID:     rec.StudentID,
		Punctuality:   rec.Punctuality,
		Contributions: rec.Contributions,
		Commitment:    rec.Commitment,
		Attitude:      rec.Attitude,
		CreatedAt:     rec.CreatedAt,
	}
	a.Overall = a.DecodeOverall(rec.OverallScore)
	return a
}

type assessmentRepo struct {
	gw          *gateway.Client
	tolerate500 bool
}

// NewAssessmentRepo 创建 AssessmentRepository 实例
// tolerate500 开启时，读取遇到后端已知的 500 缺陷按空列表处理
func NewAssessmentRepo(gw *gateway.Client, tolerate500 bool) AssessmentRepository {
	return &assessmentRepo{gw: gw, tolerate500: tolerate500}
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *model.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.New().String()
	}
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = time.Now().UTC()
	}

	stored := model.EncodeOverall(assessment.RawOverall())
	rec := assessmentRecord{
		ID:            assessment.ID,
		ActivityID:    assessment.ActivityID,
		GroupID:       assessment.GroupID,
		ReviewerID:    assessment.ReviewerID,
		StudentID:     assessment.StudentID,
		Punctuality:   assessment.Punctuality,
		Contributions: assessment.Contributions,
		Commitment:    assessment.Commitment,
		Attitude:      assessment.Attitude,
		OverallScore:  &stored,
		CreatedAt:     assessment.CreatedAt,
	}

	result, err := r.gw.Insert(ctx, model.Assessment{}.TableName(), []assessmentRecord{rec})
	if err != nil {
		return err
	}
	if err := result.First(&rec); err != nil {
		return err
	}
	*assessment = rec.toModel()
	return nil
}

func (r *assessmentRepo) ListByActivity(ctx context.Context, activityID string) ([]model.Assessment, error) {
	var records []assessmentRecord
	err := r.gw.Read(ctx, model.Assessment{}.TableName(), map[string]string{
		"activity_id": activityID,
	}, &records)
	if err != nil {
		// 后端在空结果集上存在已知缺陷：返回 500 而非空数组。
		// 开启容忍开关时按"无记录"处理，汇总计算照常进行。
		var remoteErr *gateway.RemoteError
		if r.tolerate500 && errors.As(err, &remoteErr) && remoteErr.Status == http.StatusInternalServerError {
			return nil, nil
		}
		return nil, err
	}

	assessments := make([]model.Assessment, 0, len(records))
	for i := range records {
		assessments = append(assessments, records[i].toModel())
	}
	return assessments, nil
}

func (r *assessmentRepo) Exists(ctx context.Context, activityID, reviewerID, studentID string) (bool, error) {
	var records []assessmentRecord
	err := r.gw.Read(ctx, model.Assessment{}.TableName(), map[string]string{
		"activity_id": activityID,
		"reviewer_id": reviewerID,
		"student_id":  studentID,
	}, &records)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}
