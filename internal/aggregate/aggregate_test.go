package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/attendance-insights/internal/dataset"
	domainerrors "github.com/listenupapp/attendance-insights/internal/errors"
	"github.com/listenupapp/attendance-insights/internal/normalize"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()

	ds, err := dataset.FromStrings(
		[]string{"Gender", "Major", "Attendance", "Methods"},
		[][]string{
			{"Male", "Biology", "Always", "Review lecture slides or PDF materials; Watch educational videos (e.g., YouTube)"},
			{"Female", "Physics", "", "nan"},
			{"Male", "Biology", "Sometimes", ""},
			{"", "Physics", "Always", "  Watch educational videos (e.g., YouTube)  "},
			{"Female", "", "Always", " ; ;Consult classmates' notes;"},
		},
	)
	require.NoError(t, err)
	return New(ds)
}

func TestValueCounts_Example(t *testing.T) {
	ds, err := dataset.FromStrings([]string{"Gender"}, [][]string{{"Male"}, {"Female"}, {"Male"}})
	require.NoError(t, err)

	counts, err := New(ds).ValueCounts("Gender")
	require.NoError(t, err)

	assert.Equal(t, CategoryCount{{Label: "Male", Count: 2}, {Label: "Female", Count: 1}}, counts)
}

func TestValueCounts_MissingCountedUnderEmptyLabel(t *testing.T) {
	agg := newTestAggregator(t)

	counts, err := agg.ValueCounts("Gender")
	require.NoError(t, err)

	n, ok := counts.Get("")
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestValueCounts_SumEqualsRecordCount(t *testing.T) {
	agg := newTestAggregator(t)

	for _, field := range agg.Dataset().Columns() {
		t.Run(field, func(t *testing.T) {
			counts, err := agg.ValueCounts(field)
			require.NoError(t, err)
			assert.Equal(t, agg.Dataset().Len(), counts.Total())
		})
	}
}

func TestValueCounts_TiesKeepFirstSeenOrder(t *testing.T) {
	ds, err := dataset.FromStrings([]string{"Year"}, [][]string{
		{"Second Year"}, {"First Year"}, {"First Year"}, {"Second Year"}, {"Third Year"},
	})
	require.NoError(t, err)

	counts, err := New(ds).ValueCounts("Year")
	require.NoError(t, err)
	assert.Equal(t, CategoryCount{
		{Label: "Second Year", Count: 2},
		{Label: "First Year", Count: 2},
		{Label: "Third Year", Count: 1},
	}, counts)
}

func TestValueCounts_UnknownField(t *testing.T) {
	agg := newTestAggregator(t)

	_, err := agg.ValueCounts("Shoe size")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrFieldNotFound))
}

func TestGroupCount(t *testing.T) {
	agg := newTestAggregator(t)

	rows, err := agg.GroupCount("Major", "Attendance")
	require.NoError(t, err)

	type pair struct{ a, b string }
	got := make(map[pair]int)
	total := 0
	for _, r := range rows {
		assert.Equal(t, "Major", r.FieldA)
		assert.Equal(t, "Attendance", r.FieldB)
		got[pair{r.A, r.B}] = r.Count
		total += r.Count
	}

	assert.Equal(t, agg.Dataset().Len(), total)
	assert.Equal(t, map[pair]int{
		{"Biology", "Always"}:    1,
		{"Biology", "Sometimes"}: 1,
		{"Physics", ""}:          1,
		{"Physics", "Always"}:    1,
		{"", "Always"}:           1,
	}, got)
}

func TestGroupCount_StableOrder(t *testing.T) {
	agg := newTestAggregator(t)

	first, err := agg.GroupCount("Major", "Attendance")
	require.NoError(t, err)
	for range 5 {
		again, err := agg.GroupCount("Major", "Attendance")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Equal(t, "", first[0].A, "empty label sorts first")
	assert.Equal(t, "Biology", first[1].A)
	assert.Equal(t, "Always", first[1].B)
}

func TestGroupCount_UnknownField(t *testing.T) {
	agg := newTestAggregator(t)

	_, err := agg.GroupCount("Major", "Shoe size")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrFieldNotFound))

	_, err = agg.GroupCount("Shoe size", "Major")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrFieldNotFound))
}

func TestGroupRow_MarshalJSON(t *testing.T) {
	row := GroupRow{FieldA: "Major", FieldB: "GPA range", A: "Biology", B: "80 - 89", Count: 3}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Major":"Biology","GPA range":"80 - 89","count":3}`, string(data))
}

func TestSplitMultiValue(t *testing.T) {
	agg := newTestAggregator(t)

	tokens, err := agg.SplitMultiValue("Methods", DefaultDelimiter)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Review lecture slides or PDF materials",
		"Watch educational videos (e.g., YouTube)",
		"Watch educational videos (e.g., YouTube)",
		"Consult classmates' notes",
	}, tokens)
}

func TestSplitMultiValue_SingleTokenIsTrimmedOriginal(t *testing.T) {
	ds, err := dataset.FromStrings([]string{"Reason"}, [][]string{{"  Health issues  "}})
	require.NoError(t, err)

	tokens, err := New(ds).SplitMultiValue("Reason", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Health issues"}, tokens)
}

func TestSplitMultiValue_SkipsNanLiteral(t *testing.T) {
	ds, err := dataset.FromStrings([]string{"Reason"}, [][]string{{"nan"}, {"  nan "}, {"Boring"}})
	require.NoError(t, err)

	tokens, err := New(ds).SplitMultiValue("Reason", ";")
	require.NoError(t, err)
	assert.Equal(t, []string{"Boring"}, tokens)
}

func TestSplitMultiValue_CustomDelimiter(t *testing.T) {
	ds, err := dataset.FromStrings([]string{"Reason"}, [][]string{{"a|b ; c| |"}})
	require.NoError(t, err)

	tokens, err := New(ds).SplitMultiValue("Reason", "|")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b ; c"}, tokens)
}

func TestSplitMultiValue_UnknownField(t *testing.T) {
	agg := newTestAggregator(t)

	_, err := agg.SplitMultiValue("Shoe size", ";")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrFieldNotFound))
}

func TestSplitThenNormalize_CompensationExample(t *testing.T) {
	ds, err := dataset.FromStrings([]string{"Ways"}, [][]string{
		{"Review lecture slides or PDF materials; Watch educational videos (e.g., YouTube)"},
	})
	require.NoError(t, err)

	tokens, err := New(ds).SplitMultiValue("Ways", ";")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Review lecture slides or PDF materials",
		"Watch educational videos (e.g., YouTube)",
	}, tokens)

	labels := normalize.NewLabelMap("compensation", map[string]string{
		"Review lecture slides or PDF materials":   "Review slides/PDFs",
		"Watch educational videos (e.g., YouTube)": "Watch videos",
	})
	assert.Equal(t, []string{"Review slides/PDFs", "Watch videos"}, normalize.Labels(tokens, labels))
}

func TestTopN(t *testing.T) {
	tokens := []string{"b", "a", "c", "a", "b", "d", "a"}

	top := TopN(tokens, 10)
	assert.Equal(t, CategoryCount{
		{Label: "a", Count: 3},
		{Label: "b", Count: 2},
		{Label: "c", Count: 1},
		{Label: "d", Count: 1},
	}, top)
}

func TestTopN_TieBreakIsFirstOccurrence(t *testing.T) {
	tokens := []string{"z", "y", "x", "x", "y", "z"}

	top := TopN(tokens, 3)
	assert.Equal(t, CategoryCount{
		{Label: "z", Count: 2},
		{Label: "y", Count: 2},
		{Label: "x", Count: 2},
	}, top)
}

func TestTopN_Truncates(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "a"}

	top := TopN(tokens, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Label)
	assert.Equal(t, "b", top[1].Label)
}

func TestTopN_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		n      int
		want   int
	}{
		{"fewer distinct than n", []string{"a", "a", "b"}, 10, 2},
		{"exactly n", []string{"a", "b"}, 2, 2},
		{"zero", []string{"a"}, 0, 0},
		{"negative", []string{"a"}, -1, 0},
		{"empty input", nil, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopN(tt.tokens, tt.n)
			assert.Len(t, got, tt.want)
			assert.LessOrEqual(t, len(got), max(tt.n, 0))
		})
	}
}

func TestCategoryCount_MarshalJSONKeepsOrder(t *testing.T) {
	c := CategoryCount{{Label: "zeta", Count: 5}, {Label: "alpha \"quoted\"", Count: 2}}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":5,"alpha \"quoted\"":2}`, string(data))
}

func TestCategoryCount_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(CategoryCount(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
