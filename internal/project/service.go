// AngelaMos | 2026
// service.go

package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

// Observer receives one call per service operation. metrics.Metrics
// satisfies it.
type Observer interface {
	ObserveOperation(entity, operation string, start time.Time, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, time.Time, error) {}

type Service struct {
	repo     Repository
	now      func() time.Time
	logger   *slog.Logger
	observer Observer
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		now:      time.Now,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ UseCases = (*Service)(nil)

func (s *Service) Create(ctx context.Context, p ProjectParams) (proj *Project, err error) {
	ctx, done := s.begin(ctx, "create")
	defer func() { done(err) }()

	if err := s.ensureUnique(ctx, strings.TrimSpace(p.Number), strings.TrimSpace(p.Name)); err != nil {
		return nil, err
	}

	if ref := normalizeRef(p.TemplateID); ref != nil {
		if err := s.ensureTemplate(ctx, *ref); err != nil {
			return nil, err
		}
	}

	proj, err = NewProject(p, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, proj)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project created",
		"project_id", saved.ID,
		"number", saved.Number,
	)
	return saved, nil
}

func (s *Service) Get(ctx context.Context, id string) (proj *Project, err error) {
	ctx, done := s.begin(ctx, "get")
	defer func() { done(err) }()

	return s.load(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (proj *Project, err error) {
	ctx, done := s.begin(ctx, "update")
	defer func() { done(err) }()

	proj, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	oldNumber, oldName := proj.Number, proj.Name

	if err := proj.Apply(patch); err != nil {
		return nil, err
	}

	number, name := "", ""
	if proj.Number != oldNumber {
		number = proj.Number
	}
	if proj.Name != oldName {
		name = proj.Name
	}
	if err := s.ensureUnique(ctx, number, name); err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, proj)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project updated", "project_id", updated.ID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, done := s.begin(ctx, "delete")
	defer func() { done(err) }()

	if _, err := s.load(ctx, id); err != nil {
		return false, err
	}

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}

	s.logger.InfoContext(ctx, "project deleted", "project_id", id, "deleted", deleted)
	return deleted, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) (page Page, err error) {
	ctx, done := s.begin(ctx, "list")
	defer func() { done(err) }()

	if err := core.ValidatePage(offset, limit); err != nil {
		return Page{}, err
	}

	items, err := s.repo.FindAll(ctx, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("list projects: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("count projects: %w", err)
	}

	return Page{Items: items, Offset: offset, Limit: limit, Total: total}, nil
}

func (s *Service) ListByOrganization(ctx context.Context, organizationID string) (items []Project, err error) {
	ctx, done := s.begin(ctx, "list_by_organization")
	defer func() { done(err) }()

	organizationID = strings.TrimSpace(organizationID)
	if organizationID == "" {
		return nil, core.ValidationError("organization_id", "is required")
	}

	items, err = s.repo.FindByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list projects by organization: %w", err)
	}
	return items, nil
}

func (s *Service) ListByResponsible(ctx context.Context, responsibleID string) (items []Project, err error) {
	ctx, done := s.begin(ctx, "list_by_responsible")
	defer func() { done(err) }()

	responsibleID = strings.TrimSpace(responsibleID)
	if responsibleID == "" {
		return nil, core.ValidationError("responsible_id", "is required")
	}

	items, err = s.repo.FindByResponsible(ctx, responsibleID)
	if err != nil {
		return nil, fmt.Errorf("list projects by responsible: %w", err)
	}
	return items, nil
}

// ListFromTemplate returns the projects instantiated from a template.
func (s *Service) ListFromTemplate(ctx context.Context, templateID string) (items []Project, err error) {
	ctx, done := s.begin(ctx, "list_from_template")
	defer func() { done(err) }()

	if _, err := s.load(ctx, templateID); err != nil {
		return nil, err
	}

	items, err = s.repo.FindByTemplateID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("list projects from template: %w", err)
	}
	return items, nil
}

func (s *Service) Duplicate(ctx context.Context, id string, d DuplicateParams) (proj *Project, err error) {
	ctx, done := s.begin(ctx, "duplicate")
	defer func() { done(err) }()

	src, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	copied, err := src.Duplicate(d, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, copied.Number, copied.Name); err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, copied)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project duplicated",
		"source_id", src.ID,
		"project_id", saved.ID,
	)
	return saved, nil
}

func (s *Service) SaveAsTemplate(ctx context.Context, id string) (proj *Project, err error) {
	ctx, done := s.begin(ctx, "save_as_template")
	defer func() { done(err) }()

	return s.setTemplate(ctx, id, true)
}

func (s *Service) RemoveTemplate(ctx context.Context, id string) (proj *Project, err error) {
	ctx, done := s.begin(ctx, "remove_template")
	defer func() { done(err) }()

	return s.setTemplate(ctx, id, false)
}

func (s *Service) ListTemplates(ctx context.Context) (items []Project, err error) {
	ctx, done := s.begin(ctx, "list_templates")
	defer func() { done(err) }()

	items, err = s.repo.FindTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return items, nil
}

func (s *Service) CreateFromTemplate(
	ctx context.Context,
	templateID string,
	p FromTemplateParams,
) (proj *Project, err error) {
	ctx, done := s.begin(ctx, "create_from_template")
	defer func() { done(err) }()

	template, err := s.load(ctx, templateID)
	if err != nil {
		return nil, err
	}

	proj, err = NewProjectFromTemplate(template, p, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, proj.Number, proj.Name); err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, proj)
	if err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "project.instantiated",
		attribute.String("template.id", template.ID),
		attribute.String("project.id", saved.ID),
	)
	s.logger.InfoContext(ctx, "project created from template",
		"template_id", template.ID,
		"project_id", saved.ID,
	)
	return saved, nil
}

func (s *Service) Progress(ctx context.Context, id string) (out Progress, err error) {
	ctx, done := s.begin(ctx, "progress")
	defer func() { done(err) }()

	proj, err := s.load(ctx, id)
	if err != nil {
		return Progress{}, err
	}

	return Progress{
		ProjectID:  proj.ID,
		Planned:    proj.PlannedHours,
		Actual:     proj.ActualHours,
		Percentage: proj.Progress(),
	}, nil
}

func (s *Service) Variance(ctx context.Context, id string) (out Variance, err error) {
	ctx, done := s.begin(ctx, "variance")
	defer func() { done(err) }()

	proj, err := s.load(ctx, id)
	if err != nil {
		return Variance{}, err
	}

	return Variance{
		ProjectID:       proj.ID,
		Planned:         proj.PlannedHours,
		Actual:          proj.ActualHours,
		Delta:           proj.TimeVariance(),
		DeltaPercentage: proj.VariancePercentage(),
	}, nil
}

func (s *Service) setTemplate(ctx context.Context, id string, template bool) (*Project, error) {
	proj, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if proj.IsTemplate == template {
		return proj, nil
	}

	if template {
		proj.MarkAsTemplate()
	} else {
		proj.UnmarkTemplate()
	}

	updated, err := s.update(ctx, proj)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project template flag changed",
		"project_id", updated.ID,
		"is_template", updated.IsTemplate,
	)
	return updated, nil
}

func (s *Service) load(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, core.NotFoundError(entityName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return proj, nil
}

// ensureTemplate rejects a template reference that is unknown or points
// at a concrete project.
func (s *Service) ensureTemplate(ctx context.Context, id string) error {
	template, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return core.ValidationError("template_id", "referenced project does not exist")
	}
	if err != nil {
		return fmt.Errorf("find template: %w", err)
	}
	if !template.IsTemplate {
		return core.ValidationError("template_id", "referenced project is not a template")
	}
	return nil
}

// ensureUnique checks the non-empty arguments against existing records.
func (s *Service) ensureUnique(ctx context.Context, number, name string) error {
	if number != "" {
		exists, err := s.repo.ExistsByNumber(ctx, number)
		if err != nil {
			return fmt.Errorf("check project number: %w", err)
		}
		if exists {
			return core.AlreadyExistsError(entityName, "number", number)
		}
	}

	if name != "" {
		exists, err := s.repo.ExistsByName(ctx, name)
		if err != nil {
			return fmt.Errorf("check project name: %w", err)
		}
		if exists {
			return core.AlreadyExistsError(entityName, "name", name)
		}
	}

	return nil
}

func (s *Service) save(ctx context.Context, proj *Project) (*Project, error) {
	saved, err := s.repo.Save(ctx, proj)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, conflictError(proj)
	}
	if err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	return saved, nil
}

func (s *Service) update(ctx context.Context, proj *Project) (*Project, error) {
	proj.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, proj)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return nil, core.NotFoundError(entityName, proj.ID)
	case errors.Is(err, core.ErrDuplicateKey):
		return nil, conflictError(proj)
	case err != nil:
		return nil, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

// conflictError covers a unique constraint the pre-check did not see,
// i.e. a concurrent writer won the race.
func conflictError(proj *Project) error {
	return &core.DomainError{
		Kind:    core.ErrAlreadyExists,
		Entity:  entityName,
		Message: fmt.Sprintf("project number %q or name %q already exists", proj.Number, proj.Name),
	}
}

func (s *Service) begin(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := core.StartSpan(ctx, "project."+op)

	return ctx, func(err error) {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
		span.End()
		s.observer.ObserveOperation(entityName, op, start, err)
	}
}
