// AngelaMos | 2026
// entity.go

package project

import (
	"math"
	"strings"
	"time"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

const (
	MaxNumberLength = 50
	MaxNameLength   = 255
	MaxStageLength  = 100

	// StageCompleted marks a project as finished. Matched ignoring case.
	StageCompleted = "COMPLETED"
)

const entityName = "project"

type Project struct {
	ID             string    `db:"id"`
	Number         string    `db:"number"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	StartDate      time.Time `db:"start_date"`
	DueDate        time.Time `db:"due_date"`
	Type           Type      `db:"type"`
	Stage          string    `db:"stage"`
	Comment        string    `db:"comment"`
	PlannedHours   float64   `db:"planned_hours"`
	ActualHours    float64   `db:"actual_hours"`
	IsTemplate     bool      `db:"is_template"`
	TemplateID     *string   `db:"template_id"`
	ResponsibleID  string    `db:"responsible_id"`
	OrganizationID string    `db:"organization_id"`
	ContactID      *string   `db:"contact_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ProjectParams carries every caller supplied field of a new project.
type ProjectParams struct {
	Number         string
	Name           string
	Description    string
	StartDate      time.Time
	DueDate        time.Time
	Type           Type
	Stage          string
	Comment        string
	PlannedHours   float64
	ActualHours    float64
	IsTemplate     bool
	TemplateID     *string
	ResponsibleID  string
	OrganizationID string
	ContactID      *string
}

type FromTemplateParams struct {
	Number         string
	Name           string
	StartDate      time.Time
	DueDate        time.Time
	ResponsibleID  string
	OrganizationID string
	ContactID      *string
}

type DuplicateParams struct {
	Number    string
	Name      string
	StartDate time.Time
	DueDate   time.Time
}

// Patch is a partial update. Nil fields are left untouched. An empty
// ContactID clears the reference.
type Patch struct {
	Number         *string
	Name           *string
	Description    *string
	StartDate      *time.Time
	DueDate        *time.Time
	Type           *Type
	Stage          *string
	Comment        *string
	PlannedHours   *float64
	ActualHours    *float64
	ResponsibleID  *string
	OrganizationID *string
	ContactID      *string
}

func NewProject(p ProjectParams, now time.Time) (*Project, error) {
	proj := &Project{
		Number:         strings.TrimSpace(p.Number),
		Name:           strings.TrimSpace(p.Name),
		Description:    p.Description,
		StartDate:      Date(p.StartDate),
		DueDate:        Date(p.DueDate),
		Type:           p.Type,
		Stage:          strings.TrimSpace(p.Stage),
		Comment:        p.Comment,
		PlannedHours:   p.PlannedHours,
		ActualHours:    p.ActualHours,
		IsTemplate:     p.IsTemplate,
		TemplateID:     normalizeRef(p.TemplateID),
		ResponsibleID:  strings.TrimSpace(p.ResponsibleID),
		OrganizationID: strings.TrimSpace(p.OrganizationID),
		ContactID:      normalizeRef(p.ContactID),
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}

	if err := proj.Validate(); err != nil {
		return nil, err
	}

	return proj, nil
}

// NewProjectFromTemplate instantiates a concrete project from a template.
// Description, type, stage, comment and planned hours are inherited.
func NewProjectFromTemplate(
	template *Project,
	p FromTemplateParams,
	now time.Time,
) (*Project, error) {
	if template == nil || !template.IsTemplate {
		return nil, core.ValidationError("template_id", "referenced project is not a template")
	}

	templateID := template.ID

	return NewProject(ProjectParams{
		Number:         p.Number,
		Name:           p.Name,
		Description:    template.Description,
		StartDate:      p.StartDate,
		DueDate:        p.DueDate,
		Type:           template.Type,
		Stage:          template.Stage,
		Comment:        template.Comment,
		PlannedHours:   template.PlannedHours,
		ActualHours:    0,
		IsTemplate:     false,
		TemplateID:     &templateID,
		ResponsibleID:  p.ResponsibleID,
		OrganizationID: p.OrganizationID,
		ContactID:      p.ContactID,
	}, now)
}

func (p *Project) Validate() error {
	switch {
	case p.Number == "":
		return core.ValidationError("number", "is required")
	case len(p.Number) > MaxNumberLength:
		return core.ValidationError("number", "must be at most 50 characters")
	case p.Name == "":
		return core.ValidationError("name", "is required")
	case len(p.Name) > MaxNameLength:
		return core.ValidationError("name", "must be at most 255 characters")
	case p.StartDate.IsZero():
		return core.ValidationError("start_date", "is required")
	case p.DueDate.IsZero():
		return core.ValidationError("due_date", "is required")
	case !p.DueDate.After(p.StartDate):
		return core.ValidationError("due_date", "must be after start_date")
	case !p.Type.IsValid():
		return core.ValidationError("type", "must be one of INTERNAL, EXTERNAL, MAINTENANCE, DEVELOPMENT")
	case len(p.Stage) > MaxStageLength:
		return core.ValidationError("stage", "must be at most 100 characters")
	case !validHours(p.PlannedHours):
		return core.ValidationError("planned_hours", "must be a non-negative number")
	case !validHours(p.ActualHours):
		return core.ValidationError("actual_hours", "must be a non-negative number")
	case p.ResponsibleID == "":
		return core.ValidationError("responsible_id", "is required")
	case p.OrganizationID == "":
		return core.ValidationError("organization_id", "is required")
	case p.ID != "" && p.TemplateID != nil && *p.TemplateID == p.ID:
		return core.ValidationError("template_id", "project cannot reference itself")
	}
	return nil
}

// Apply validates the patched project as a whole and only then commits
// it, so a rejected patch leaves p unchanged.
func (p *Project) Apply(patch Patch) error {
	next := *p

	if patch.Number != nil {
		next.Number = strings.TrimSpace(*patch.Number)
	}
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.StartDate != nil {
		next.StartDate = Date(*patch.StartDate)
	}
	if patch.DueDate != nil {
		next.DueDate = Date(*patch.DueDate)
	}
	if patch.Type != nil {
		next.Type = *patch.Type
	}
	if patch.Stage != nil {
		next.Stage = strings.TrimSpace(*patch.Stage)
	}
	if patch.Comment != nil {
		next.Comment = *patch.Comment
	}
	if patch.PlannedHours != nil {
		next.PlannedHours = *patch.PlannedHours
	}
	if patch.ActualHours != nil {
		next.ActualHours = *patch.ActualHours
	}
	if patch.ResponsibleID != nil {
		next.ResponsibleID = strings.TrimSpace(*patch.ResponsibleID)
	}
	if patch.OrganizationID != nil {
		next.OrganizationID = strings.TrimSpace(*patch.OrganizationID)
	}
	if patch.ContactID != nil {
		next.ContactID = normalizeRef(patch.ContactID)
	}

	if err := next.Validate(); err != nil {
		return err
	}

	*p = next
	return nil
}

// Duplicate copies p under a new number, name and schedule. The copy has
// no id and zero actual hours.
func (p *Project) Duplicate(d DuplicateParams, now time.Time) (*Project, error) {
	return NewProject(ProjectParams{
		Number:         d.Number,
		Name:           d.Name,
		Description:    p.Description,
		StartDate:      d.StartDate,
		DueDate:        d.DueDate,
		Type:           p.Type,
		Stage:          p.Stage,
		Comment:        p.Comment,
		PlannedHours:   p.PlannedHours,
		ActualHours:    0,
		IsTemplate:     p.IsTemplate,
		TemplateID:     cloneRef(p.TemplateID),
		ResponsibleID:  p.ResponsibleID,
		OrganizationID: p.OrganizationID,
		ContactID:      cloneRef(p.ContactID),
	}, now)
}

func (p *Project) MarkAsTemplate() {
	p.IsTemplate = true
}

func (p *Project) UnmarkTemplate() {
	p.IsTemplate = false
}

func (p *Project) IsCompleted() bool {
	return strings.EqualFold(p.Stage, StageCompleted)
}

func (p *Project) CreatedFromTemplate() bool {
	return p.TemplateID != nil
}

// IsActive reports whether the due date has not passed yet.
func (p *Project) IsActive(now time.Time) bool {
	return !Date(now).After(p.DueDate)
}

func (p *Project) DaysRemaining(now time.Time) int {
	today := Date(now)
	if today.After(p.DueDate) {
		return 0
	}
	return int(p.DueDate.Sub(today).Hours() / 24)
}

// Progress is actual over planned hours as a percentage, capped at 100.
func (p *Project) Progress() float64 {
	if p.PlannedHours == 0 {
		return 0
	}
	return round2(math.Min(p.ActualHours/p.PlannedHours*100, 100))
}

func (p *Project) TimeVariance() float64 {
	return round2(p.ActualHours - p.PlannedHours)
}

func (p *Project) VariancePercentage() float64 {
	if p.PlannedHours == 0 {
		return 0
	}
	return round2((p.ActualHours - p.PlannedHours) / p.PlannedHours * 100)
}

// IsOverdue is true for an unfinished project that is either past its
// due date or over its planned hours.
func (p *Project) IsOverdue(now time.Time) bool {
	if p.IsCompleted() {
		return false
	}
	return Date(now).After(p.DueDate) || p.ActualHours > p.PlannedHours
}

// Date truncates t to midnight UTC of its own calendar day.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validHours(h float64) bool {
	return h >= 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}

func cloneRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := *ref
	return &v
}
