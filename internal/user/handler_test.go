// AngelaMos | 2026
// handler_test.go

package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carterperez-dev/templates/project-records/internal/core"
	"github.com/carterperez-dev/templates/project-records/internal/user"
	"github.com/carterperez-dev/templates/project-records/internal/user/mocks"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *core.PageMeta  `json:"meta"`
	Error   *core.ErrorBody `json:"error"`
}

func setup(t *testing.T) (*mocks.MockUseCases, http.Handler) {
	t.Helper()

	svc := mocks.NewMockUseCases(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/v1", user.NewHandler(svc).RegisterRoutes)

	return svc, r
}

func request(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestHandlerCreate(t *testing.T) {
	const body = `{"last_name":"Doe","first_name":"Ann","email":"A@X.com",
		"password":"Password1","role":"employee"}`

	t.Run("created without hash in body", func(t *testing.T) {
		svc, h := setup(t)
		svc.EXPECT().Create(gomock.Any(), user.UserParams{
			LastName:  "Doe",
			FirstName: "Ann",
			Email:     "A@X.com",
			Password:  "Password1",
			Role:      user.RoleEmployee,
		}).Return(stored("u-1"), nil)

		code, env := request(t, h, http.MethodPost, "/v1/users", body)
		require.Equal(t, http.StatusCreated, code)
		assert.NotContains(t, string(env.Data), "password")

		var got user.UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "a@x.com", got.Email)
		assert.Equal(t, "Ann Doe", got.FullName)
		assert.False(t, got.CanManageProjects)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, h := setup(t)

		code, env := request(t, h, http.MethodPost, "/v1/users",
			strings.Replace(body, "employee", "owner", 1))
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "role", env.Error.Field)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, h := setup(t)

		code, env := request(t, h, http.MethodPost, "/v1/users",
			strings.Replace(body, "A@X.com", "nope", 1))
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, env.Error.Message, "email must be a valid email address")
	})

	t.Run("email taken", func(t *testing.T) {
		svc, h := setup(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, core.AlreadyExistsError("user", "email", "a@x.com"))

		code, _ := request(t, h, http.MethodPost, "/v1/users", body)
		assert.Equal(t, http.StatusConflict, code)
	})
}

func TestHandlerList(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().List(gomock.Any(), 0, 2).
		Return(user.Page{Items: []user.User{*stored("a"), *stored("b")}, Limit: 2, Total: 3}, nil)

	code, env := request(t, h, http.MethodGet, "/v1/users?limit=2", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.Total)

	var items []user.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestHandlerDeleteKeepsRecord(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().Delete(gomock.Any(), "u-1").Return(true, nil)
	svc.EXPECT().Get(gomock.Any(), "u-1").
		Return(stored("u-1", func(u *user.User) { u.Active = false }), nil)

	code, _ := request(t, h, http.MethodDelete, "/v1/users/u-1", "")
	assert.Equal(t, http.StatusNoContent, code)

	code, env := request(t, h, http.MethodGet, "/v1/users/u-1", "")
	require.Equal(t, http.StatusOK, code)

	var got user.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.Active)
}

func TestHandlerSetActive(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().SetActive(gomock.Any(), "u-1", false).
		Return(stored("u-1", func(u *user.User) { u.Active = false }), nil)

	code, _ := request(t, h, http.MethodPut, "/v1/users/u-1/active", `{"active":false}`)
	assert.Equal(t, http.StatusOK, code)

	code, _ = request(t, h, http.MethodPut, "/v1/users/u-1/active", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestHandlerChangeRole(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().ChangeRole(gomock.Any(), "u-1", user.RoleManager).
		Return(stored("u-1", func(u *user.User) { u.Role = user.RoleManager }), nil)

	code, env := request(t, h, http.MethodPut, "/v1/users/u-1/role", `{"role":"manager"}`)
	require.Equal(t, http.StatusOK, code)

	var got user.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, user.RoleManager, got.Role)
	assert.True(t, got.CanManageProjects)
}

func TestHandlerChangePassword(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().ChangePassword(gomock.Any(), "u-1", "Wrong1234", "NewPassword2").
		Return(nil, core.AuthorizationError("current password is incorrect"))

	code, env := request(t, h, http.MethodPut, "/v1/users/u-1/password",
		`{"old_password":"Wrong1234","new_password":"NewPassword2"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestHandlerUpdateNotFound(t *testing.T) {
	svc, h := setup(t)
	svc.EXPECT().Update(gomock.Any(), "nope", gomock.Any()).
		Return(nil, core.NotFoundError("user", "nope"))

	code, _ := request(t, h, http.MethodPut, "/v1/users/nope", `{"first_name":"Anna"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandlerMalformedBody(t *testing.T) {
	_, h := setup(t)

	code, env := request(t, h, http.MethodPut, "/v1/users/u-1/role", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}
