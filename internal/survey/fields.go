// Package survey names the columns of the attendance survey export and the
// label tables used to shorten its multi-select answers.
package survey

// Column names as they appear in the export after header trimming.
// Note the double space in FieldFactors; it is part of the export.
const (
	FieldMajor                = "Major"
	FieldYear                 = "Current year of study"
	FieldGPA                  = "GPA range"
	FieldAttendanceBehavior   = "Class attendance behavior"
	FieldGender               = "Gender"
	FieldAttendanceGPA        = "Relationship between class attendance and GPA"
	FieldLearningMethods      = "Effective learning methods for academic performance"
	FieldOptionalFrequency    = "Frequency of optional attendance"
	FieldReasonsAttending     = "Reasons for attending classes?"
	FieldReasonsSkipping      = "Reasons for skipping classes"
	FieldFactors              = "Factors  influencing attendance"
	FieldCompensation         = "Ways of compensation for the missed content?"
	FieldAttitude             = "Attitude toward attending classes"
	FieldAlternativeEffective = "Effectiveness of alternative methods compared to attending classes"
)

// RequiredFields lists every column the analytics endpoints read. The dataset
// is rejected at startup when any of them is absent.
func RequiredFields() []string {
	return []string{
		FieldMajor,
		FieldYear,
		FieldGPA,
		FieldAttendanceBehavior,
		FieldGender,
		FieldAttendanceGPA,
		FieldLearningMethods,
		FieldOptionalFrequency,
		FieldReasonsAttending,
		FieldReasonsSkipping,
		FieldFactors,
		FieldCompensation,
		FieldAttitude,
		FieldAlternativeEffective,
	}
}

// NoCompensation is the compensation answer meaning the student does not catch up.
const NoCompensation = "I usually do not compensate for missed classes"
