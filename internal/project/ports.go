// AngelaMos | 2026
// ports.go

package project

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
)

// Repository is the storage port. Lookups of an unknown id return an
// error wrapping core.ErrNotFound; unique constraint violations wrap
// core.ErrDuplicateKey.
type Repository interface {
	Save(ctx context.Context, p *Project) (*Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	FindAll(ctx context.Context, offset, limit int) ([]Project, error)
	Count(ctx context.Context) (int, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, p *Project) (*Project, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindTemplates(ctx context.Context) ([]Project, error)
	FindByTemplateID(ctx context.Context, templateID string) ([]Project, error)
	FindByOrganization(ctx context.Context, organizationID string) ([]Project, error)
	FindByResponsible(ctx context.Context, responsibleID string) ([]Project, error)
}

// UseCases is the port the transport adapter drives.
type UseCases interface {
	Create(ctx context.Context, p ProjectParams) (*Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, id string, patch Patch) (*Project, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, offset, limit int) (Page, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]Project, error)
	ListByResponsible(ctx context.Context, responsibleID string) ([]Project, error)
	ListFromTemplate(ctx context.Context, templateID string) ([]Project, error)
	Duplicate(ctx context.Context, id string, d DuplicateParams) (*Project, error)
	SaveAsTemplate(ctx context.Context, id string) (*Project, error)
	RemoveTemplate(ctx context.Context, id string) (*Project, error)
	ListTemplates(ctx context.Context) ([]Project, error)
	CreateFromTemplate(ctx context.Context, templateID string, p FromTemplateParams) (*Project, error)
	Progress(ctx context.Context, id string) (Progress, error)
	Variance(ctx context.Context, id string) (Variance, error)
}

type Page struct {
	Items  []Project
	Offset int
	Limit  int
	Total  int
}

type Progress struct {
	ProjectID  string
	Planned    float64
	Actual     float64
	Percentage float64
}

type Variance struct {
	ProjectID       string
	Planned         float64
	Actual          float64
	Delta           float64
	DeltaPercentage float64
}
