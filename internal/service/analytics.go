package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/attendance-insights/internal/aggregate"
	"github.com/listenupapp/attendance-insights/internal/dataset"
	"github.com/listenupapp/attendance-insights/internal/normalize"
	"github.com/listenupapp/attendance-insights/internal/survey"
)

// DefaultTopN is the number of entries kept by ranked multi-select endpoints.
const DefaultTopN = 10

// AnalyticsService answers the dashboard queries from the loaded survey.
type AnalyticsService struct {
	agg    *aggregate.Aggregator
	topN   int
	logger *slog.Logger
}

// NewAnalyticsService creates a new analytics service over ds.
// topN <= 0 falls back to DefaultTopN.
func NewAnalyticsService(ds *dataset.Dataset, topN int, logger *slog.Logger) *AnalyticsService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &AnalyticsService{
		agg:    aggregate.New(ds),
		topN:   topN,
		logger: logger,
	}
}

// Dataset returns the dataset the service reads from.
func (s *AnalyticsService) Dataset() *dataset.Dataset {
	return s.agg.Dataset()
}

// Records returns every survey response.
func (s *AnalyticsService) Records(_ context.Context) []dataset.Record {
	return s.agg.Dataset().Records()
}

// Fields returns the dataset column names in file order.
func (s *AnalyticsService) Fields(_ context.Context) []string {
	return s.agg.Dataset().Columns()
}

// FieldCounts returns value counts for any column.
func (s *AnalyticsService) FieldCounts(ctx context.Context, field string) (aggregate.CategoryCount, error) {
	counts, err := s.agg.ValueCounts(field)
	if err != nil {
		s.logger.DebugContext(ctx, "value counts failed", "field", field, "error", err)
		return nil, err
	}
	return counts, nil
}

// Summary holds the overview figures of the dashboard header.
type Summary struct {
	TotalStudents             int
	Majors                    aggregate.CategoryCount
	Years                     aggregate.CategoryCount
	GPADistribution           aggregate.CategoryCount
	AttendanceBehavior        aggregate.CategoryCount
	GenderDistribution        aggregate.CategoryCount
	AttendanceGPARelationship aggregate.CategoryCount
	LearningMethods           aggregate.CategoryCount
	AttendanceFrequency       aggregate.CategoryCount
}

// Summary computes the total record count and value counts of the overview fields.
func (s *AnalyticsService) Summary(ctx context.Context) (*Summary, error) {
	out := &Summary{TotalStudents: s.agg.Dataset().Len()}

	targets := []struct {
		field string
		dst   *aggregate.CategoryCount
	}{
		{survey.FieldMajor, &out.Majors},
		{survey.FieldYear, &out.Years},
		{survey.FieldGPA, &out.GPADistribution},
		{survey.FieldAttendanceBehavior, &out.AttendanceBehavior},
		{survey.FieldGender, &out.GenderDistribution},
		{survey.FieldAttendanceGPA, &out.AttendanceGPARelationship},
		{survey.FieldLearningMethods, &out.LearningMethods},
		{survey.FieldOptionalFrequency, &out.AttendanceFrequency},
	}

	for _, t := range targets {
		counts, err := s.agg.ValueCounts(t.field)
		if err != nil {
			return nil, err
		}
		*t.dst = counts
	}

	s.logger.DebugContext(ctx, "computed summary", "records", out.TotalStudents)
	return out, nil
}

// AttendanceByMajor groups records by major and attendance behavior.
func (s *AnalyticsService) AttendanceByMajor(_ context.Context) ([]aggregate.GroupRow, error) {
	return s.agg.GroupCount(survey.FieldMajor, survey.FieldAttendanceBehavior)
}

// GPAByAttendance groups records by attendance behavior and GPA range.
func (s *AnalyticsService) GPAByAttendance(_ context.Context) ([]aggregate.GroupRow, error) {
	return s.agg.GroupCount(survey.FieldAttendanceBehavior, survey.FieldGPA)
}

// YearWiseAnalysis groups records by year of study and attendance behavior.
func (s *AnalyticsService) YearWiseAnalysis(_ context.Context) ([]aggregate.GroupRow, error) {
	return s.agg.GroupCount(survey.FieldYear, survey.FieldAttendanceBehavior)
}

// Reasons holds the most common reasons to attend and to skip classes.
type Reasons struct {
	Attending aggregate.CategoryCount
	Skipping  aggregate.CategoryCount
}

// ReasonsAnalysis ranks the multi-select reasons for attending and skipping.
func (s *AnalyticsService) ReasonsAnalysis(_ context.Context) (*Reasons, error) {
	attending, err := s.agg.SplitMultiValue(survey.FieldReasonsAttending, aggregate.DefaultDelimiter)
	if err != nil {
		return nil, err
	}
	skipping, err := s.agg.SplitMultiValue(survey.FieldReasonsSkipping, aggregate.DefaultDelimiter)
	if err != nil {
		return nil, err
	}

	return &Reasons{
		Attending: aggregate.TopN(attending, s.topN),
		Skipping:  aggregate.TopN(skipping, s.topN),
	}, nil
}

// FactorsInfluencing ranks the factors that would make students attend more.
func (s *AnalyticsService) FactorsInfluencing(ctx context.Context) (aggregate.CategoryCount, error) {
	return s.rankedLabels(ctx, survey.FieldFactors, survey.FactorLabels)
}

// CompensationMethods ranks how students catch up on missed content.
func (s *AnalyticsService) CompensationMethods(ctx context.Context) (aggregate.CategoryCount, error) {
	return s.rankedLabels(ctx, survey.FieldCompensation, survey.CompensationLabels)
}

func (s *AnalyticsService) rankedLabels(ctx context.Context, field string, labels normalize.LabelMap) (aggregate.CategoryCount, error) {
	tokens, err := s.agg.SplitMultiValue(field, aggregate.DefaultDelimiter)
	if err != nil {
		return nil, err
	}

	ranked := aggregate.TopN(normalize.Labels(tokens, labels), s.topN)
	s.logger.DebugContext(ctx, "ranked multi-select field",
		"field", field,
		"labels", labels.Name(),
		"tokens", len(tokens),
		"entries", len(ranked),
	)
	return ranked, nil
}

// Attitude counts answers to the attitude question.
func (s *AnalyticsService) Attitude(_ context.Context) (aggregate.CategoryCount, error) {
	return s.agg.ValueCounts(survey.FieldAttitude)
}

// Effectiveness counts how effective students find alternatives to attending.
func (s *AnalyticsService) Effectiveness(_ context.Context) (aggregate.CategoryCount, error) {
	return s.agg.ValueCounts(survey.FieldAlternativeEffective)
}

// OptionalFrequency counts how often students attend optional classes.
func (s *AnalyticsService) OptionalFrequency(_ context.Context) (aggregate.CategoryCount, error) {
	return s.agg.ValueCounts(survey.FieldOptionalFrequency)
}
