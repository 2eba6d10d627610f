package apierr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	var v Validator
	assert.NoError(t, v.Err())

	v.Required("name", "  ")
	v.Required("sickness", "flu")
	v.Add("name", "second message is ignored")
	v.Add("end", "must not be before start")

	err := v.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, map[string]string{"name": "required", "end": "must not be before start"}, FieldErrors(err))
	assert.Equal(t, "invalid input: end: must not be before start, name: required", err.Error())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(fmt.Errorf("x: %w", ErrInvalidInput)))
	assert.Equal(t, http.StatusNotFound, Status(fmt.Errorf("x: %w", store.ErrNotFound)))
	assert.Equal(t, http.StatusNotFound, Status(querycache.ErrDisabled))
	assert.Equal(t, http.StatusGatewayTimeout, Status(context.DeadlineExceeded))
	assert.Equal(t, http.StatusBadGateway, Status(fmt.Errorf("remote down")))
}

func TestWriteError_ValidationBody(t *testing.T) {
	var v Validator
	v.Required("what", "")

	rr := httptest.NewRecorder()
	WriteError(rr, v.Err())

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"what": "required"}, body.Fields)
}
