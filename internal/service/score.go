package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"groupmate/backend/internal/model"
	"groupmate/backend/internal/repository"
)

// ScoreService 互评汇总业务接口
type ScoreService interface {
	// 单个活动的汇总：全活动均值 + 按小组/按被评学生的分层统计
	ActivitySummary(ctx context.Context, activityID string) (*model.ActivitySummary, error)
	// 跨活动的课程级汇总；activityIDs 为空时直接返回空结果，不发起任何读取
	CourseSummary(ctx context.Context, activityIDs []string) (*model.CourseSummary, error)
}

type scoreService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScoreService 创建 ScoreService 实例
func NewScoreService(repo *repository.Repository, logger *zap.Logger) ScoreService {
	return &scoreService{repo: repo, logger: logger}
}

// round2 保留 2 位小数，半数远离零舍入
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeAverages 将一组互评记录归约为五项均值
// 纯函数，无 I/O，完全确定：
//   - 空输入时五项均为精确的 0；
//   - 四项指标各自取算术均值后保留 2 位小数；
//   - 总评不是四项均值的再平均，而是"每条记录自身总评的均值"：
//     先算每条记录的 (守时+贡献+投入+态度)/4，再对这些总评取均值，
//     只在最终结果处做一次舍入，中间值一律不舍入。
func ComputeAverages(assessments []model.Assessment) model.ScoreAverages {
	if len(assessments) == 0 {
		return model.ScoreAverages{}
	}

	var punctuality, contributions, commitment, attitude int
	var overallSum float64
	for i := range assessments {
		a := &assessments[i]
		punctuality += a.Punctuality
		contributions += a.Contributions
		commitment += a.Commitment
		attitude += a.Attitude
		overallSum += a.RawOverall()
	}

	n := float64(len(assessments))
	return model.ScoreAverages{
		Punctuality:   round2(float64(punctuality) / n),
		Contributions: round2(float64(contributions) / n),
		Commitment:    round2(float64(commitment) / n),
		Attitude:      round2(float64(attitude) / n),
		Overall:       round2(overallSum / n),
	}
}

// bucket 分桶结果，保持键首次出现的顺序
type bucket struct {
	key   string
	items []model.Assessment
}

// partitionBy 按键函数分桶；桶的迭代顺序为键首次出现的顺序
// 空键同样成桶，不会被丢弃
func partitionBy(assessments []model.Assessment, keyOf func(*model.Assessment) string) []bucket {
	index := make(map[string]int)
	var buckets []bucket
	for i := range assessments {
		key := keyOf(&assessments[i])
		pos, ok := index[key]
		if !ok {
			pos = len(buckets)
			index[key] = pos
			buckets = append(buckets, bucket{key: key})
		}
		buckets[pos].items = append(buckets[pos].items, assessments[i])
	}
	return buckets
}

func (s *scoreService) ActivitySummary(ctx context.Context, activityID string) (*model.ActivitySummary, error) {
	assessments, err := s.repo.Assessment.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("读取活动 %s 的评审记录失败: %w", activityID, err)
	}

	summary := &model.ActivitySummary{
		ActivityID: activityID,
		Averages:   ComputeAverages(assessments),
		Groups:     []model.GroupActivityStats{},
	}

	for _, groupBucket := range partitionBy(assessments, func(a *model.Assessment) string { return a.GroupID }) {
		stats := model.GroupActivityStats{
			GroupID:          groupBucket.key,
			AssessmentsCount: len(groupBucket.items),
			Averages:         ComputeAverages(groupBucket.items),
			Students:         []model.StudentActivityReviewStats{},
		}
		for _, studentBucket := range partitionBy(groupBucket.items, func(a *model.Assessment) string { return a.StudentID }) {
			stats.Students = append(stats.Students, model.StudentActivityReviewStats{
				StudentID:     studentBucket.key,
				ReceivedCount: len(studentBucket.items),
				Averages:      ComputeAverages(studentBucket.items),
			})
		}
		summary.Groups = append(summary.Groups, stats)
	}

	return summary, nil
}

func (s *scoreService) CourseSummary(ctx context.Context, activityIDs []string) (*model.CourseSummary, error) {
	summary := &model.CourseSummary{
		Students: []model.StudentCrossActivityStats{},
		Groups:   []model.GroupCrossActivityStats{},
	}
	if len(activityIDs) == 0 {
		return summary, nil
	}

	// 按活动逐个读取；任一读取失败即中止整个汇总
	var combined []model.Assessment
	for _, activityID := range activityIDs {
		assessments, err := s.repo.Assessment.ListByActivity(ctx, activityID)
		if err != nil {
			return nil, fmt.Errorf("读取活动 %s 的评审记录失败: %w", activityID, err)
		}
		combined = append(combined, assessments...)
	}

	for _, studentBucket := range partitionBy(combined, func(a *model.Assessment) string { return a.StudentID }) {
		summary.Students = append(summary.Students, model.StudentCrossActivityStats{
			StudentID:           studentBucket.key,
			AssessmentsReceived: len(studentBucket.items),
			Averages:            ComputeAverages(studentBucket.items),
		})
	}
	for _, groupBucket := range partitionBy(combined, func(a *model.Assessment) string { return a.GroupID }) {
		summary.Groups = append(summary.Groups, model.GroupCrossActivityStats{
			GroupID:          groupBucket.key,
			AssessmentsCount: len(groupBucket.items),
			Averages:         ComputeAverages(groupBucket.items),
		})
	}

	return summary, nil
}
