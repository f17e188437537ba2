package service

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/listenupapp/attendance-insights/internal/aggregate"
	"github.com/listenupapp/attendance-insights/internal/dataset"
	"github.com/listenupapp/attendance-insights/internal/normalize"
	"github.com/listenupapp/attendance-insights/internal/survey"
)

// Sentiment buckets for the mean attitude score (1-5 scale).
const (
	SentimentVeryPositive = "very positive"
	SentimentPositive     = "positive"
	SentimentNeutral      = "neutral"
)

// Answer labels the insights single out.
const (
	effectivenessLess = "Less effective"
	effectivenessMore = "More effective"
)

// Answer markers the insights count. Optional attendance is answered on a
// 1-5 scale.
//
//nolint:gochecknoglobals // Static lookup tables
var (
	optionalHighScores  = []string{"4", "5"}
	optionalLowScores   = []string{"1", "2"}
	highGPAMarkers      = []string{"70", "80", "90"}
	highAttendanceWords = []string{"all", "most"}
)

// Insights are the headline findings shown under the dashboard charts.
// Percentages are of all responses, rounded to a whole percent.
type Insights struct {
	// TopMajor is nil when no record has a major.
	TopMajor       *aggregate.LabelCount
	DistinctMajors int
	// AttendanceImpactPct is the share of students who report that attending
	// more frequently leads to higher performance.
	AttendanceImpactPct int
	// HighAttendancePct is the share attending most or all classes.
	HighAttendancePct int
	// HighGPAPct is the share with a GPA range of 70 or above.
	HighGPAPct        int
	AttitudeMean      float64
	AttitudeResponses int
	AttitudeSentiment string
	// TopCompensation ignores students who do not compensate at all.
	TopCompensation   *aggregate.LabelCount
	TopLearningMethod *aggregate.LabelCount
	LessEffective     int
	MoreEffective     int
	OptionalHigh      int
	OptionalLow       int
	Gender            aggregate.CategoryCount
}

// Insights derives the headline findings from the survey.
func (s *AnalyticsService) Insights(ctx context.Context) (*Insights, error) {
	out := &Insights{}

	majors, err := s.agg.ValueCounts(survey.FieldMajor)
	if err != nil {
		return nil, err
	}
	out.TopMajor = firstLabeled(majors)
	for _, lc := range majors {
		if lc.Label != "" {
			out.DistinctMajors++
		}
	}

	total := s.agg.Dataset().Len()

	positive, err := s.countMatching(survey.FieldAttendanceGPA, func(answer string) bool {
		answer = strings.ToLower(answer)
		return strings.Contains(answer, "more frequently") && strings.Contains(answer, "higher")
	})
	if err != nil {
		return nil, err
	}
	out.AttendanceImpactPct = percent(positive, total)

	attending, err := s.countMatching(survey.FieldAttendanceBehavior, func(answer string) bool {
		return slices.ContainsFunc(strings.Fields(strings.ToLower(answer)), func(word string) bool {
			return slices.Contains(highAttendanceWords, word)
		})
	})
	if err != nil {
		return nil, err
	}
	out.HighAttendancePct = percent(attending, total)

	highGPA, err := s.countMatching(survey.FieldGPA, func(answer string) bool {
		return slices.ContainsFunc(highGPAMarkers, func(marker string) bool {
			return strings.Contains(answer, marker)
		})
	})
	if err != nil {
		return nil, err
	}
	out.HighGPAPct = percent(highGPA, total)

	attitude, err := s.agg.Dataset().Values(survey.FieldAttitude)
	if err != nil {
		return nil, err
	}
	out.AttitudeMean, out.AttitudeResponses = meanScore(attitude)
	out.AttitudeSentiment = sentiment(out.AttitudeMean)

	methods, err := s.agg.SplitMultiValue(survey.FieldCompensation, aggregate.DefaultDelimiter)
	if err != nil {
		return nil, err
	}
	kept := methods[:0:0]
	for _, m := range methods {
		if m != survey.NoCompensation {
			kept = append(kept, m)
		}
	}
	out.TopCompensation = firstLabeled(aggregate.TopN(normalize.Labels(kept, survey.CompensationLabels), 1))

	learning, err := s.agg.ValueCounts(survey.FieldLearningMethods)
	if err != nil {
		return nil, err
	}
	out.TopLearningMethod = firstLabeled(learning)

	effectiveness, err := s.agg.ValueCounts(survey.FieldAlternativeEffective)
	if err != nil {
		return nil, err
	}
	out.LessEffective, _ = effectiveness.Get(effectivenessLess)
	out.MoreEffective, _ = effectiveness.Get(effectivenessMore)

	frequency, err := s.agg.ValueCounts(survey.FieldOptionalFrequency)
	if err != nil {
		return nil, err
	}
	out.OptionalHigh = sumOf(frequency, optionalHighScores)
	out.OptionalLow = sumOf(frequency, optionalLowScores)

	if out.Gender, err = s.agg.ValueCounts(survey.FieldGender); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "computed insights",
		"attendance_impact_pct", out.AttendanceImpactPct,
		"attitude_mean", out.AttitudeMean,
	)
	return out, nil
}

// countMatching counts the records of field whose answer satisfies match.
// Missing answers never match.
func (s *AnalyticsService) countMatching(field string, match func(string) bool) (int, error) {
	cells, err := s.agg.Dataset().Values(field)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, cell := range cells {
		if !cell.Missing && match(cell.Value) {
			n++
		}
	}
	return n, nil
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// sumOf adds the counts of labels.
func sumOf(c aggregate.CategoryCount, labels []string) int {
	sum := 0
	for _, label := range labels {
		n, _ := c.Get(label)
		sum += n
	}
	return sum
}

// firstLabeled returns the highest ranked entry with a non-empty label.
func firstLabeled(c aggregate.CategoryCount) *aggregate.LabelCount {
	for _, lc := range c {
		if lc.Label != "" {
			return &lc
		}
	}
	return nil
}

// meanScore averages the cells that hold a whole number, rounded to one decimal.
func meanScore(cells []dataset.Cell) (mean float64, responses int) {
	sum := 0
	for _, c := range cells {
		n, err := strconv.Atoi(strings.TrimSpace(c.Text()))
		if err != nil {
			continue
		}
		sum += n
		responses++
	}
	if responses == 0 {
		return 0, 0
	}
	return math.Round(float64(sum)/float64(responses)*10) / 10, responses
}

func sentiment(mean float64) string {
	switch {
	case mean >= 4:
		return SentimentVeryPositive
	case mean >= 3:
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}
