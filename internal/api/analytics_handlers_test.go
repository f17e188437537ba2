package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/attendance-insights/internal/dataset"
	"github.com/listenupapp/attendance-insights/internal/survey"
)

func TestGetData(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/data")
	require.Equal(t, http.StatusOK, resp.Code)

	records := decodeJSON[[]map[string]string](t, resp)
	require.Len(t, records, 4)
	assert.Equal(t, "Computer Science", records[0][survey.FieldMajor])
	// Missing values render as empty strings, never null.
	value, ok := records[3][survey.FieldGPA]
	assert.True(t, ok)
	assert.Equal(t, "", value)
	assert.Len(t, records[0], len(survey.RequiredFields()))

	// Keys follow the file's column order.
	first := resp.Body.String()
	prev := -1
	for _, field := range survey.RequiredFields() {
		key, err := json.Marshal(field)
		require.NoError(t, err)
		idx := strings.Index(first, string(key))
		require.Greater(t, idx, prev, field)
		prev = idx
	}
}

func TestGetSummary(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/summary")
	require.Equal(t, http.StatusOK, resp.Code)

	// Counts keep rank order on the wire.
	assert.Contains(t, resp.Body.String(), `"majors":{"Computer Science":2,"Biology":1,"Mathematics":1}`)

	summary := decodeJSON[map[string]any](t, resp)
	assert.EqualValues(t, 4, summary["total_students"])
	for _, key := range []string{
		"majors",
		"years",
		"gpa_distribution",
		"attendance_behavior",
		"gender_distribution",
		"attendance_gpa_relationship",
		"learning_methods",
		"attendance_frequency",
	} {
		counts, ok := summary[key].(map[string]any)
		require.True(t, ok, key)

		total := 0.0
		for _, n := range counts {
			total += n.(float64)
		}
		assert.EqualValues(t, 4, total, key)
	}
}

func TestGroupEndpoints(t *testing.T) {
	tests := []struct {
		path   string
		fieldA string
		fieldB string
	}{
		{"/api/attendance_by_major", survey.FieldMajor, survey.FieldAttendanceBehavior},
		{"/api/gpa_by_attendance", survey.FieldAttendanceBehavior, survey.FieldGPA},
		{"/api/year_wise_analysis", survey.FieldYear, survey.FieldAttendanceBehavior},
	}

	ts := setupTestServer(t)

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := ts.api.Get(tt.path)
			require.Equal(t, http.StatusOK, resp.Code)

			rows := decodeJSON[[]map[string]any](t, resp)
			require.NotEmpty(t, rows)

			total := 0.0
			for _, row := range rows {
				assert.Len(t, row, 3)
				assert.Contains(t, row, tt.fieldA)
				assert.Contains(t, row, tt.fieldB)
				total += row["count"].(float64)
			}
			assert.EqualValues(t, 4, total)
		})
	}
}

func TestAttendanceByMajor_Order(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/attendance_by_major")
	require.Equal(t, http.StatusOK, resp.Code)

	rows := decodeJSON[[]map[string]any](t, resp)
	require.Len(t, rows, 4)
	assert.Equal(t, map[string]any{
		survey.FieldMajor:              "Biology",
		survey.FieldAttendanceBehavior: "I attend most classes",
		"count":                        1.0,
	}, rows[0])
	assert.Equal(t, "Mathematics", rows[3][survey.FieldMajor])
}

func TestGetReasonsAnalysis(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/reasons_analysis")
	require.Equal(t, http.StatusOK, resp.Code)

	reasons := decodeJSON[map[string]map[string]int](t, resp)
	assert.Equal(t, map[string]int{
		"Interest in the subject": 2,
		"Attendance is mandatory": 2,
	}, reasons["attending"])
	assert.Equal(t, map[string]int{
		"Boring lectures":    2,
		"Schedule conflicts": 1,
		"Health issues":      1,
	}, reasons["skipping"])
	assert.NotContains(t, reasons["skipping"], "nan")
}

func TestGetFactorsInfluencing(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/factors_influencing")
	require.Equal(t, http.StatusOK, resp.Code)

	assert.JSONEq(t, `{"Instruction quality":2,"Others":2,"Exam relevance":1}`, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `{"Instruction quality":2,"Others":2,"Exam relevance":1}`)
}

func TestGetCompensationMethods(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/compensation_methods")
	require.Equal(t, http.StatusOK, resp.Code)

	counts := decodeJSON[map[string]int](t, resp)
	assert.Equal(t, map[string]int{
		"Watch videos":              3,
		"Review slides/PDFs":        1,
		"No catch-up":               1,
		"Consult classmates' notes": 1,
	}, counts)
}

func TestSingleFieldEndpoints(t *testing.T) {
	tests := []struct {
		path string
		want map[string]int
	}{
		{"/api/attitude", map[string]int{"5": 1, "4": 1, "2": 1, "Not sure": 1}},
		{"/api/effectiveness", map[string]int{"Less effective": 2, "Equally effective": 1, "More effective": 1}},
		{"/api/optional_frequency", map[string]int{"Often": 2, "Sometimes": 1, "": 1}},
	}

	ts := setupTestServer(t)

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := ts.api.Get(tt.path)
			require.Equal(t, http.StatusOK, resp.Code)
			assert.Equal(t, tt.want, decodeJSON[map[string]int](t, resp))
		})
	}
}

func TestGetInsights(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/insights")
	require.Equal(t, http.StatusOK, resp.Code)

	assert.JSONEq(t, `{
		"top_major": {"label": "Computer Science", "count": 2},
		"distinct_majors": 3,
		"attendance_impact_pct": 75,
		"high_attendance_pct": 75,
		"high_gpa_pct": 50,
		"attitude": {"mean": 3.7, "responses": 3, "sentiment": "positive"},
		"top_compensation": {"label": "Watch videos", "count": 3},
		"top_learning_method": {"label": "Attending lectures", "count": 2},
		"alternatives": {"less_effective": 2, "more_effective": 1},
		"optional_attendance": {"high": 0, "low": 0},
		"gender": {"Male": 2, "Female": 2}
	}`, resp.Body.String())
}

func TestAnalytics_MissingColumn(t *testing.T) {
	ds, err := dataset.FromStrings([]string{survey.FieldGender}, [][]string{{"Male"}})
	require.NoError(t, err)
	ts := setupTestServerWith(t, ds)

	resp := ts.api.Get("/api/summary")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	body := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, "FIELD_NOT_FOUND", body["code"])
	assert.Equal(t, map[string]any{"field": survey.FieldMajor}, body["details"])
}

func TestAnalytics_EmptyDataset(t *testing.T) {
	ds, err := dataset.FromStrings(survey.RequiredFields(), nil)
	require.NoError(t, err)
	ts := setupTestServerWith(t, ds)

	resp := ts.api.Get("/api/attendance_by_major")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())

	resp = ts.api.Get("/api/attitude")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{}`, resp.Body.String())

	resp = ts.api.Get("/api/insights")
	require.Equal(t, http.StatusOK, resp.Code)
	insights := decodeJSON[map[string]any](t, resp)
	assert.Nil(t, insights["top_major"])
	assert.Nil(t, insights["top_compensation"])
	assert.Nil(t, insights["top_learning_method"])
	assert.Equal(t, map[string]any{}, insights["gender"])

	resp = ts.api.Get("/api/data")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}
