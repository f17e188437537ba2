package survey

import "github.com/listenupapp/attendance-insights/internal/normalize"

// FactorLabels shortens answers to "Factors  influencing attendance".
//
//nolint:gochecknoglobals // Static lookup table
var FactorLabels = normalize.NewLabelMap("factors", map[string]string{
	"Practical application of course content (e.g., examples, case studies, problem-solving)": "Practical application",
	"Quality and clarity of instruction during lectures":                                      "Instruction quality",
	"Opportunities for in-class discussion to better understand theoretical concepts":         "Class discussion",
	"Ability to choose class schedules and/or instructors":                                    "Schedules/instructor choice",
	"Relevance of lectures to examinations and assessments":                                   "Exam relevance",
	"None of these factors would influence my decision to attend classes":                     "No influence",
	"all": "Others",
	"How much the lecturer is serious and passionate about the material and delivering it": "Others",
})

// CompensationLabels shortens answers to "Ways of compensation for the missed content?".
//
//nolint:gochecknoglobals // Static lookup table
var CompensationLabels = normalize.NewLabelMap("compensation", map[string]string{
	"Review lecture slides or PDF materials":                  "Review slides/PDFs",
	"Watch educational videos (e.g., YouTube)":                "Watch videos",
	"Consult classmates' notes":                               "Consult classmates' notes",
	"Use AI-based tools for learning support (e.g., ChatGPT)": "Use AI tools",
	"Watch recorded lectures, if available":                   "Watch recorded lectures",
	"Rely on explanations provided by classmates or peers":    "Peer explanations",
	NoCompensation: "No catch-up",
})
