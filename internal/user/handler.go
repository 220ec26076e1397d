// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

type Handler struct {
	service   UseCases
	validator *validator.Validate
}

func NewHandler(service UseCases) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{userID}", h.Get)
		r.Put("/{userID}", h.Update)
		r.Delete("/{userID}", h.Delete)
		r.Put("/{userID}/active", h.SetActive)
		r.Put("/{userID}/role", h.ChangeRole)
		r.Put("/{userID}/password", h.ChangePassword)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	params, err := req.toParams()
	if err != nil {
		core.Error(w, r, err)
		return
	}

	u, err := h.service.Create(r.Context(), params)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Created(w, ToUserResponse(u))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := core.PageFromQuery(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), offset, limit)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Paginated(w, ToUserResponseList(page.Items), page.Offset, page.Limit, page.Total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.service.Update(r.Context(), chi.URLParam(r, "userID"), req.toPatch())
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

// Delete deactivates the account; the record is retained.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		core.Error(w, r, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req SetActiveRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.service.SetActive(r.Context(), chi.URLParam(r, "userID"), *req.Active)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req ChangeRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	u, err := h.service.ChangeRole(r.Context(), chi.URLParam(r, "userID"), role)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := h.service.ChangePassword(
		r.Context(),
		chi.URLParam(r, "userID"),
		req.OldPassword,
		req.NewPassword,
	)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

// decode writes the error response itself and reports whether the
// handler should continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		core.Error(w, r, core.ValidationError("", core.FormatValidationError(err)))
		return false
	}

	return true
}
