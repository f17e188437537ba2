package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeFieldNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeDatasetUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestFieldNotFound_MatchesSentinel(t *testing.T) {
	err := FieldNotFound("Shoe size")

	assert.True(t, Is(err, ErrFieldNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, `field "Shoe size" not found in dataset`, err.Error())
	assert.Equal(t, map[string]string{"field": "Shoe size"}, err.Details)
}

func TestFieldNotFound_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("summary: %w", FieldNotFound("Major"))

	var domainErr *Error
	require.True(t, As(wrapped, &domainErr))
	assert.Equal(t, CodeFieldNotFound, domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus())
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("open data.csv: no such file or directory")
	err := Wrap(cause, CodeDatasetUnavailable, "failed to open dataset")

	assert.Equal(t, "failed to open dataset: open data.csv: no such file or directory", err.Error())
	assert.Equal(t, cause, Unwrap(err))
	assert.True(t, Is(err, ErrDatasetUnavailable))
}
