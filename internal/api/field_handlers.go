package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerFieldRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFields",
		Method:      http.MethodGet,
		Path:        "/api/fields",
		Summary:     "List fields",
		Description: "Returns the dataset column names in file order",
		Tags:        []string{tagFields},
	}, s.handleListFields)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFieldCounts",
		Method:      http.MethodGet,
		Path:        "/api/fields/{field}/counts",
		Summary:     "Field value counts",
		Description: "Returns value counts for any column. Unknown columns yield FIELD_NOT_FOUND.",
		Tags:        []string{tagFields},
		Errors:      []int{http.StatusNotFound},
	}, s.handleGetFieldCounts)
}

// FieldsResponse lists the dataset columns.
type FieldsResponse struct {
	Fields []string `json:"fields" doc:"Column names in file order"`
}

// FieldsOutput wraps the fields response for Huma.
type FieldsOutput struct {
	Body FieldsResponse
}

// FieldCountsInput contains parameters for per-field value counts.
type FieldCountsInput struct {
	Field string `path:"field" minLength:"1" maxLength:"512" doc:"Column name, URL encoded"`
}

// Resolve decodes the field when the router matched on the escaped path.
// Chi does that only when the request needs a raw form (e.g. %2F); otherwise
// the value is already decoded and must not be decoded again.
func (i *FieldCountsInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	if u.RawPath == "" {
		return nil
	}

	field, err := url.PathUnescape(i.Field)
	if err != nil {
		return []error{&huma.ErrorDetail{
			Location: "path.field",
			Message:  "invalid percent encoding",
			Value:    i.Field,
		}}
	}
	i.Field = field
	return nil
}

// FieldCountsResponse contains value counts for one column.
type FieldCountsResponse struct {
	Field  string `json:"field"`
	Total  int    `json:"total" doc:"Sum of counts, equal to the record count"`
	Counts Counts `json:"counts"`
}

// FieldCountsOutput wraps the field counts response for Huma.
type FieldCountsOutput struct {
	Body FieldCountsResponse
}

func (s *Server) handleListFields(ctx context.Context, _ *struct{}) (*FieldsOutput, error) {
	return &FieldsOutput{Body: FieldsResponse{Fields: s.analytics.Fields(ctx)}}, nil
}

func (s *Server) handleGetFieldCounts(ctx context.Context, input *FieldCountsInput) (*FieldCountsOutput, error) {
	field := input.Field
	counts, err := s.analytics.FieldCounts(ctx, field)
	if err != nil {
		return nil, toAPIError(err)
	}

	return &FieldCountsOutput{
		Body: FieldCountsResponse{
			Field:  field,
			Total:  counts.Total(),
			Counts: countsOf(counts),
		},
	}, nil
}
