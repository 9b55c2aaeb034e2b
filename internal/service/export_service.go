package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"groupmate/backend/internal/repository"
)

// ExportService 汇总导出业务接口
type ExportService interface {
	// CourseSummaryWorkbook 把课程级互评汇总导出为 Excel 工作簿
	// （学生汇总、小组汇总两个工作表）
	CourseSummaryWorkbook(ctx context.Context, courseID string) (*excelize.File, error)
}

type exportService struct {
	repo   *repository.Repository
	score  ScoreService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, score ScoreService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, score: score, logger: logger}
}

const (
	sheetStudents = "学生汇总"
	sheetGroups   = "小组汇总"
)

func (s *exportService) CourseSummaryWorkbook(ctx context.Context, courseID string) (*excelize.File, error) {
	activities, err := s.repo.Activity.ListActiveByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	activityIDs := make([]string, 0, len(activities))
	for i := range activities {
		activityIDs = append(activityIDs, activities[i].ID)
	}

	summary, err := s.score.CourseSummary(ctx, activityIDs)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	// ── 学生汇总 ──
	f.SetSheetName("Sheet1", sheetStudents)
	studentHeader := []interface{}{"学生ID", "收到评审数", "守时", "贡献", "投入", "态度", "总评"}
	if err := f.SetSheetRow(sheetStudents, "A1", &studentHeader); err != nil {
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}
	for i, st := range summary.Students {
		row := []interface{}{
			st.StudentID,
			st.AssessmentsReceived,
			st.Averages.Punctuality,
			st.Averages.Contributions,
			st.Averages.Commitment,
			st.Averages.Attitude,
			st.Averages.Overall,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetStudents, cell, &row); err != nil {
			return nil, fmt.Errorf("写入学生汇总失败: %w", err)
		}
	}

	// ── 小组汇总 ──
	if _, err := f.NewSheet(sheetGroups); err != nil {
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}
	groupHeader := []interface{}{"小组ID", "评审记录数", "守时", "贡献", "投入", "态度", "总评"}
	if err := f.SetSheetRow(sheetGroups, "A1", &groupHeader); err != nil {
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}
	for i, g := range summary.Groups {
		groupID := g.GroupID
		if groupID == "" {
			groupID = "（未分组）"
		}
		row := []interface{}{
			groupID,
			g.AssessmentsCount,
			g.Averages.Punctuality,
			g.Averages.Contributions,
			g.Averages.Commitment,
			g.Averages.Attitude,
			g.Averages.Overall,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetGroups, cell, &row); err != nil {
			return nil, fmt.Errorf("写入小组汇总失败: %w", err)
		}
	}

	s.logger.Info("课程汇总导出完成",
		zap.String("course_id", courseID),
		zap.Int("students", len(summary.Students)),
		zap.Int("groups", len(summary.Groups)),
	)
	return f, nil
}
