package serializer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name      string
		res       Response
		wantCode  int
		wantMsg   string
		wantError string
	}{
		{"db error passes message", DBErr("", errors.New("relation does not exist")), http.StatusInternalServerError, "database error", "relation does not exist"},
		{"param error default", ParamErr("", nil), http.StatusBadRequest, "parameter error", "parameter error"},
		{"param error detail", ParamErr("invalid zip code", errors.New("zip_code must be a 5-digit ZIP code")), http.StatusBadRequest, "invalid zip code", "zip_code must be a 5-digit ZIP code"},
		{"auth", AuthErr("Unauthorized"), http.StatusUnauthorized, "Unauthorized", "Unauthorized"},
		{"not found", NotFoundErr("survey not found"), http.StatusNotFound, "survey not found", "survey not found"},
		{"generation is generic", GenerationErr(), http.StatusInternalServerError, "failed to generate activities", "failed to generate activities"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.res.Code)
			assert.Equal(t, tt.wantMsg, tt.res.Msg)
			assert.Equal(t, tt.wantError, tt.res.Error)
		})
	}
}

func TestOK(t *testing.T) {
	res := OK([]int{1})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, res.Error)
	assert.Equal(t, []int{1}, res.Data)
}
