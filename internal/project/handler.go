// AngelaMos | 2026
// handler.go

package project

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

type Handler struct {
	service   UseCases
	validator *validator.Validate
	now       func() time.Time
}

func NewHandler(service UseCases) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
		now:       time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)

		r.Get("/templates", h.ListTemplates)
		r.Post("/templates/{projectID}/projects", h.CreateFromTemplate)
		r.Get("/templates/{projectID}/projects", h.ListFromTemplate)

		r.Get("/{projectID}", h.Get)
		r.Put("/{projectID}", h.Update)
		r.Delete("/{projectID}", h.Delete)
		r.Post("/{projectID}/duplicate", h.Duplicate)
		r.Post("/{projectID}/template", h.SaveAsTemplate)
		r.Delete("/{projectID}/template", h.RemoveTemplate)
		r.Get("/{projectID}/progress", h.Progress)
		r.Get("/{projectID}/variance", h.Variance)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	params, err := req.toParams()
	if err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.service.Create(r.Context(), params)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Created(w, ToProjectResponse(p, h.now()))
}

// List pages through every project unless organization_id or
// responsible_id narrows the result, in which case it is unpaged.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if orgID := q.Get("organization_id"); orgID != "" {
		items, err := h.service.ListByOrganization(r.Context(), orgID)
		h.writeList(w, r, items, err)
		return
	}

	if responsibleID := q.Get("responsible_id"); responsibleID != "" {
		items, err := h.service.ListByResponsible(r.Context(), responsibleID)
		h.writeList(w, r, items, err)
		return
	}

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

	core.Paginated(
		w,
		ToProjectResponseList(page.Items, h.now()),
		page.Offset,
		page.Limit,
		page.Total,
	)
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListTemplates(r.Context())
	h.writeList(w, r, items, err)
}

func (h *Handler) ListFromTemplate(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListFromTemplate(r.Context(), chi.URLParam(r, "projectID"))
	h.writeList(w, r, items, err)
}

func (h *Handler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	var req FromTemplateRequest
	if !h.decode(w, r, &req) {
		return
	}

	params, err := req.toParams()
	if err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.service.CreateFromTemplate(r.Context(), chi.URLParam(r, "projectID"), params)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Created(w, ToProjectResponse(p, h.now()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToProjectResponse(p, h.now()))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "projectID"), patch)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToProjectResponse(p, h.now()))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if !deleted {
		core.NotFound(w, "project")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Duplicate(w http.ResponseWriter, r *http.Request) {
	var req DuplicateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	params, err := req.toParams()
	if err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.service.Duplicate(r.Context(), chi.URLParam(r, "projectID"), params)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Created(w, ToProjectResponse(p, h.now()))
}

func (h *Handler) SaveAsTemplate(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.SaveAsTemplate(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToProjectResponse(p, h.now()))
}

func (h *Handler) RemoveTemplate(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.RemoveTemplate(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToProjectResponse(p, h.now()))
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Progress(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ProgressResponse(progress))
}

func (h *Handler) Variance(w http.ResponseWriter, r *http.Request) {
	variance, err := h.service.Variance(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, VarianceResponse(variance))
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, items []Project, err error) {
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.OK(w, ToProjectResponseList(items, h.now()))
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
