package api

import (
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/attendance-insights/internal/aggregate"
	"github.com/listenupapp/attendance-insights/internal/dataset"
)

// Counts is a label to count JSON object in rank order.
type Counts struct {
	aggregate.CategoryCount
}

// Schema describes Counts as an object of integer counts keyed by label.
func (Counts) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:                 huma.TypeObject,
		Description:          "Label to count, most common first",
		AdditionalProperties: &huma.Schema{Type: huma.TypeInteger, Minimum: ptr(0.0)},
	}
}

func countsOf(c aggregate.CategoryCount) Counts {
	return Counts{CategoryCount: c}
}

// GroupRows is a GroupCount result. Each row carries the two grouping fields
// under their column names plus a count.
type GroupRows struct {
	Rows []aggregate.GroupRow
}

// MarshalJSON renders the rows as a JSON array, never null.
func (g GroupRows) MarshalJSON() ([]byte, error) {
	if g.Rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g.Rows)
}

// Schema describes GroupRows as an array of flat objects.
func (GroupRows) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeArray,
		Description: "Groups ordered by the first field then the second",
		Items: &huma.Schema{
			Type: huma.TypeObject,
			Properties: map[string]*huma.Schema{
				"count": {Type: huma.TypeInteger, Minimum: ptr(1.0)},
			},
			Required:             []string{"count"},
			AdditionalProperties: &huma.Schema{Type: huma.TypeString},
		},
	}
}

// DataRows is the raw record list. Each record keeps the file's column order.
type DataRows struct {
	Records []dataset.Record
}

// MarshalJSON renders the records as a JSON array, never null.
func (d DataRows) MarshalJSON() ([]byte, error) {
	if d.Records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Records)
}

// Schema describes DataRows as an array of column to value objects.
func (DataRows) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeArray,
		Description: "Survey responses in file order, missing answers as empty strings",
		Items: &huma.Schema{
			Type:                 huma.TypeObject,
			AdditionalProperties: &huma.Schema{Type: huma.TypeString},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
