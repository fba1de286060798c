package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioforge/folioforge/internal/api/response"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, http.StatusOK, map[string]string{"hello": "world"}, "req-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
	assert.Equal(t, "req-1", env.Meta.RequestID)
	assert.NotEmpty(t, env.Meta.Timestamp)
}

func TestErr(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Err(rec, http.StatusConflict, "SLUG_TAKEN", "This URL is already taken", "req-2")

	assert.Equal(t, http.StatusConflict, rec.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "SLUG_TAKEN", env.Error.Code)
	assert.Equal(t, "This URL is already taken", env.Error.Message)
	assert.Nil(t, env.Data)
}

func TestNewMeta_GeneratesRequestID(t *testing.T) {
	meta := response.NewMeta("")
	assert.NotEmpty(t, meta.RequestID)
}

func TestSuccessList(t *testing.T) {
	rec := httptest.NewRecorder()
	response.SuccessList(rec, http.StatusOK, []int{1, 2, 3}, 3, 1, 20, "req-3")

	var env response.ListEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 3, env.Meta.Total)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 20, env.Meta.Limit)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
