// Package surveytest provides a small survey dataset for tests.
package surveytest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/attendance-insights/internal/dataset"
	"github.com/listenupapp/attendance-insights/internal/survey"
)

// Responses are the fixture rows keyed by column. Columns absent from a row
// are missing values.
//
//nolint:gochecknoglobals // Test fixture
var Responses = []map[string]string{
	{
		survey.FieldMajor:                "Computer Science",
		survey.FieldYear:                 "First Year",
		survey.FieldGPA:                  "80 - 89",
		survey.FieldAttendanceBehavior:   "I attend all classes",
		survey.FieldGender:               "Male",
		survey.FieldAttendanceGPA:        "Attending more frequently leads to higher GPA",
		survey.FieldLearningMethods:      "Attending lectures",
		survey.FieldOptionalFrequency:    "Often",
		survey.FieldReasonsAttending:     "Interest in the subject; Attendance is mandatory",
		survey.FieldReasonsSkipping:      "nan",
		survey.FieldFactors:              "Quality and clarity of instruction during lectures; Relevance of lectures to examinations and assessments",
		survey.FieldCompensation:         "Review lecture slides or PDF materials; Watch educational videos (e.g., YouTube)",
		survey.FieldAttitude:             "5",
		survey.FieldAlternativeEffective: "Less effective",
	},
	{
		survey.FieldMajor:                "Biology",
		survey.FieldYear:                 "Second Year",
		survey.FieldGPA:                  "70 - 79",
		survey.FieldAttendanceBehavior:   "I attend most classes",
		survey.FieldGender:               "Female",
		survey.FieldAttendanceGPA:        "No relationship",
		survey.FieldLearningMethods:      "Self-study",
		survey.FieldOptionalFrequency:    "Sometimes",
		survey.FieldReasonsAttending:     "Attendance is mandatory",
		survey.FieldReasonsSkipping:      "Boring lectures; Schedule conflicts",
		survey.FieldFactors:              "all",
		survey.FieldCompensation:         "Watch educational videos (e.g., YouTube)",
		survey.FieldAttitude:             "4",
		survey.FieldAlternativeEffective: "Equally effective",
	},
	{
		survey.FieldMajor:                "Computer Science",
		survey.FieldYear:                 "First Year",
		survey.FieldGPA:                  "60 - 69",
		survey.FieldAttendanceBehavior:   "I rarely attend",
		survey.FieldGender:               "Male",
		survey.FieldAttendanceGPA:        "Attending more frequently leads to higher GPA",
		survey.FieldLearningMethods:      "Self-study",
		survey.FieldReasonsSkipping:      "Boring lectures",
		survey.FieldFactors:              "How much the lecturer is serious and passionate about the material and delivering it ",
		survey.FieldCompensation:         survey.NoCompensation,
		survey.FieldAttitude:             "2",
		survey.FieldAlternativeEffective: "More effective",
	},
	{
		survey.FieldMajor:                "Mathematics",
		survey.FieldYear:                 "Third Year",
		survey.FieldAttendanceBehavior:   "I attend all classes",
		survey.FieldGender:               "Female",
		survey.FieldAttendanceGPA:        "Attending more frequently leads to higher GPA",
		survey.FieldLearningMethods:      "Attending lectures",
		survey.FieldOptionalFrequency:    "Often",
		survey.FieldReasonsAttending:     "Interest in the subject",
		survey.FieldReasonsSkipping:      "Health issues ; ",
		survey.FieldFactors:              "Quality and clarity of instruction during lectures",
		survey.FieldCompensation:         "Watch educational videos (e.g., YouTube); Consult classmates' notes",
		survey.FieldAttitude:             "Not sure",
		survey.FieldAlternativeEffective: "Less effective",
	},
}

// Columns returns the fixture columns in file order.
func Columns() []string {
	return survey.RequiredFields()
}

// Dataset builds the fixture dataset.
func Dataset(t testing.TB) *dataset.Dataset {
	t.Helper()

	cols := Columns()
	rows := make([][]string, len(Responses))
	for i, resp := range Responses {
		rows[i] = make([]string, len(cols))
		for j, col := range cols {
			rows[i][j] = resp[col]
		}
	}

	ds, err := dataset.FromStrings(cols, rows)
	require.NoError(t, err)
	return ds
}
