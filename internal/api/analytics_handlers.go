package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/attendance-insights/internal/aggregate"
)

func (s *Server) registerAnalyticsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getData",
		Method:      http.MethodGet,
		Path:        "/api/data",
		Summary:     "All records",
		Description: "Returns every survey response as a field to value mapping. Missing values are empty strings.",
		Tags:        []string{tagAnalytics},
	}, s.handleGetData)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSummary",
		Method:      http.MethodGet,
		Path:        "/api/summary",
		Summary:     "Survey summary",
		Description: "Returns the record count and value counts of the overview fields",
		Tags:        []string{tagAnalytics},
	}, s.handleGetSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAttendanceByMajor",
		Method:      http.MethodGet,
		Path:        "/api/attendance_by_major",
		Summary:     "Attendance by major",
		Description: "Counts records per major and attendance behavior",
		Tags:        []string{tagAnalytics},
	}, s.groupHandler(s.analytics.AttendanceByMajor))

	huma.Register(s.api, huma.Operation{
		OperationID: "getGPAByAttendance",
		Method:      http.MethodGet,
		Path:        "/api/gpa_by_attendance",
		Summary:     "GPA by attendance",
		Description: "Counts records per attendance behavior and GPA range",
		Tags:        []string{tagAnalytics},
	}, s.groupHandler(s.analytics.GPAByAttendance))

	huma.Register(s.api, huma.Operation{
		OperationID: "getYearWiseAnalysis",
		Method:      http.MethodGet,
		Path:        "/api/year_wise_analysis",
		Summary:     "Attendance by year",
		Description: "Counts records per year of study and attendance behavior",
		Tags:        []string{tagAnalytics},
	}, s.groupHandler(s.analytics.YearWiseAnalysis))

	huma.Register(s.api, huma.Operation{
		OperationID: "getReasonsAnalysis",
		Method:      http.MethodGet,
		Path:        "/api/reasons_analysis",
		Summary:     "Reasons to attend or skip",
		Description: "Returns the most common reasons for attending and for skipping classes",
		Tags:        []string{tagAnalytics},
	}, s.handleGetReasons)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFactorsInfluencing",
		Method:      http.MethodGet,
		Path:        "/api/factors_influencing",
		Summary:     "Factors influencing attendance",
		Description: "Returns the most common factors with long answers shortened to dashboard labels",
		Tags:        []string{tagAnalytics},
	}, s.countsHandler(s.analytics.FactorsInfluencing))

	huma.Register(s.api, huma.Operation{
		OperationID: "getCompensationMethods",
		Method:      http.MethodGet,
		Path:        "/api/compensation_methods",
		Summary:     "Compensation methods",
		Description: "Returns the most common ways students catch up on missed content",
		Tags:        []string{tagAnalytics},
	}, s.countsHandler(s.analytics.CompensationMethods))

	huma.Register(s.api, huma.Operation{
		OperationID: "getAttitude",
		Method:      http.MethodGet,
		Path:        "/api/attitude",
		Summary:     "Attitude toward attending",
		Tags:        []string{tagAnalytics},
	}, s.countsHandler(s.analytics.Attitude))

	huma.Register(s.api, huma.Operation{
		OperationID: "getEffectiveness",
		Method:      http.MethodGet,
		Path:        "/api/effectiveness",
		Summary:     "Effectiveness of alternatives",
		Tags:        []string{tagAnalytics},
	}, s.countsHandler(s.analytics.Effectiveness))

	huma.Register(s.api, huma.Operation{
		OperationID: "getOptionalFrequency",
		Method:      http.MethodGet,
		Path:        "/api/optional_frequency",
		Summary:     "Optional attendance frequency",
		Tags:        []string{tagAnalytics},
	}, s.countsHandler(s.analytics.OptionalFrequency))

	huma.Register(s.api, huma.Operation{
		OperationID: "getInsights",
		Method:      http.MethodGet,
		Path:        "/api/insights",
		Summary:     "Headline insights",
		Description: "Returns the findings shown beneath the dashboard charts",
		Tags:        []string{tagAnalytics},
	}, s.handleGetInsights)
}

// === DTOs ===

// DataOutput wraps the record list for Huma.
type DataOutput struct {
	Body DataRows
}

// SummaryResponse contains the overview figures in API responses.
type SummaryResponse struct {
	TotalStudents             int    `json:"total_students" doc:"Number of survey responses"`
	Majors                    Counts `json:"majors"`
	Years                     Counts `json:"years"`
	GPADistribution           Counts `json:"gpa_distribution"`
	AttendanceBehavior        Counts `json:"attendance_behavior"`
	GenderDistribution        Counts `json:"gender_distribution"`
	AttendanceGPARelationship Counts `json:"attendance_gpa_relationship"`
	LearningMethods           Counts `json:"learning_methods"`
	AttendanceFrequency       Counts `json:"attendance_frequency"`
}

// SummaryOutput wraps the summary response for Huma.
type SummaryOutput struct {
	Body SummaryResponse
}

// GroupOutput wraps a GroupCount result for Huma.
type GroupOutput struct {
	Body GroupRows
}

// CountsOutput wraps a label to count mapping for Huma.
type CountsOutput struct {
	Body Counts
}

// ReasonsResponse contains the ranked reasons in API responses.
type ReasonsResponse struct {
	Attending Counts `json:"attending"`
	Skipping  Counts `json:"skipping"`
}

// ReasonsOutput wraps the reasons response for Huma.
type ReasonsOutput struct {
	Body ReasonsResponse
}

// LabelCountResponse is a single ranked answer.
type LabelCountResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AttitudeResponse summarizes the 1-5 attitude scores.
type AttitudeResponse struct {
	Mean      float64 `json:"mean" doc:"Mean of numeric answers, one decimal"`
	Responses int     `json:"responses" doc:"Number of numeric answers"`
	Sentiment string  `json:"sentiment" enum:"very positive,positive,neutral"`
}

// AlternativesResponse compares alternatives to attending classes.
type AlternativesResponse struct {
	LessEffective int `json:"less_effective" doc:"Students finding alternatives less effective"`
	MoreEffective int `json:"more_effective" doc:"Students finding alternatives more effective"`
}

// OptionalAttendanceResponse splits the 1-5 optional attendance answers.
type OptionalAttendanceResponse struct {
	High int `json:"high" doc:"Answers of 4 or 5"`
	Low  int `json:"low" doc:"Answers of 1 or 2"`
}

// InsightsResponse contains the headline findings in API responses.
type InsightsResponse struct {
	TopMajor            *LabelCountResponse        `json:"top_major" doc:"Most common major, null without answers"`
	DistinctMajors      int                        `json:"distinct_majors" doc:"Number of different majors"`
	AttendanceImpactPct int                        `json:"attendance_impact_pct" doc:"Percent reporting that attending more leads to higher GPA"`
	HighAttendancePct   int                        `json:"high_attendance_pct" doc:"Percent attending most or all classes"`
	HighGPAPct          int                        `json:"high_gpa_pct" doc:"Percent with a GPA range of 70 or above"`
	Attitude            AttitudeResponse           `json:"attitude"`
	TopCompensation     *LabelCountResponse        `json:"top_compensation" doc:"Most common catch-up method, null without answers"`
	TopLearningMethod   *LabelCountResponse        `json:"top_learning_method" doc:"Most chosen learning method, null without answers"`
	Alternatives        AlternativesResponse       `json:"alternatives"`
	OptionalAttendance  OptionalAttendanceResponse `json:"optional_attendance"`
	Gender              Counts                     `json:"gender"`
}

// InsightsOutput wraps the insights response for Huma.
type InsightsOutput struct {
	Body InsightsResponse
}

// === Handlers ===

func (s *Server) handleGetData(ctx context.Context, _ *struct{}) (*DataOutput, error) {
	return &DataOutput{Body: DataRows{Records: s.analytics.Records(ctx)}}, nil
}

func (s *Server) handleGetSummary(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	summary, err := s.analytics.Summary(ctx)
	if err != nil {
		return nil, toAPIError(err)
	}

	return &SummaryOutput{
		Body: SummaryResponse{
			TotalStudents:             summary.TotalStudents,
			Majors:                    countsOf(summary.Majors),
			Years:                     countsOf(summary.Years),
			GPADistribution:           countsOf(summary.GPADistribution),
			AttendanceBehavior:        countsOf(summary.AttendanceBehavior),
			GenderDistribution:        countsOf(summary.GenderDistribution),
			AttendanceGPARelationship: countsOf(summary.AttendanceGPARelationship),
			LearningMethods:           countsOf(summary.LearningMethods),
			AttendanceFrequency:       countsOf(summary.AttendanceFrequency),
		},
	}, nil
}

func (s *Server) groupHandler(fn func(context.Context) ([]aggregate.GroupRow, error)) func(context.Context, *struct{}) (*GroupOutput, error) {
	return func(ctx context.Context, _ *struct{}) (*GroupOutput, error) {
		rows, err := fn(ctx)
		if err != nil {
			return nil, toAPIError(err)
		}
		return &GroupOutput{Body: GroupRows{Rows: rows}}, nil
	}
}

func (s *Server) countsHandler(fn func(context.Context) (aggregate.CategoryCount, error)) func(context.Context, *struct{}) (*CountsOutput, error) {
	return func(ctx context.Context, _ *struct{}) (*CountsOutput, error) {
		counts, err := fn(ctx)
		if err != nil {
			return nil, toAPIError(err)
		}
		return &CountsOutput{Body: countsOf(counts)}, nil
	}
}

func (s *Server) handleGetReasons(ctx context.Context, _ *struct{}) (*ReasonsOutput, error) {
	reasons, err := s.analytics.ReasonsAnalysis(ctx)
	if err != nil {
		return nil, toAPIError(err)
	}

	return &ReasonsOutput{
		Body: ReasonsResponse{
			Attending: countsOf(reasons.Attending),
			Skipping:  countsOf(reasons.Skipping),
		},
	}, nil
}

func (s *Server) handleGetInsights(ctx context.Context, _ *struct{}) (*InsightsOutput, error) {
	insights, err := s.analytics.Insights(ctx)
	if err != nil {
		return nil, toAPIError(err)
	}

	return &InsightsOutput{
		Body: InsightsResponse{
			TopMajor:            labelCountResponse(insights.TopMajor),
			DistinctMajors:      insights.DistinctMajors,
			AttendanceImpactPct: insights.AttendanceImpactPct,
			HighAttendancePct:   insights.HighAttendancePct,
			HighGPAPct:          insights.HighGPAPct,
			Attitude: AttitudeResponse{
				Mean:      insights.AttitudeMean,
				Responses: insights.AttitudeResponses,
				Sentiment: insights.AttitudeSentiment,
			},
			TopCompensation:   labelCountResponse(insights.TopCompensation),
			TopLearningMethod: labelCountResponse(insights.TopLearningMethod),
			Alternatives: AlternativesResponse{
				LessEffective: insights.LessEffective,
				MoreEffective: insights.MoreEffective,
			},
			OptionalAttendance: OptionalAttendanceResponse{
				High: insights.OptionalHigh,
				Low:  insights.OptionalLow,
			},
			Gender: countsOf(insights.Gender),
		},
	}, nil
}

func labelCountResponse(lc *aggregate.LabelCount) *LabelCountResponse {
	if lc == nil {
		return nil
	}
	return &LabelCountResponse{Label: lc.Label, Count: lc.Count}
}
