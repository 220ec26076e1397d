// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", ValidationError("name", "is required"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"conflict", AlreadyExistsError("user", "email", "a@x.com"), http.StatusConflict, "ALREADY_EXISTS"},
		{"not found", NotFoundError("project", "p-1"), http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", AuthorizationError("no"), http.StatusForbidden, "FORBIDDEN"},
		{"wrapped", fmt.Errorf("update: %w", NotFoundError("project", "p-1")), http.StatusNotFound, "NOT_FOUND"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.NotContains(t, env.Error.Message, "pq:")
		})
	}
}

func TestErrorCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodPost, "/", nil), ValidationError("due_date", "must be after start_date"))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "due_date", env.Error.Field)
	assert.Equal(t, "must be after start_date", env.Error.Message)
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a", "b"}, 20, 10, 42)

	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, PageMeta{Offset: 20, Limit: 10, Total: 42}, *env.Meta)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
