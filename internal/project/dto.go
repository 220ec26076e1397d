// AngelaMos | 2026
// dto.go

package project

import (
	"time"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

// DateLayout is the wire format of project dates.
const DateLayout = time.DateOnly

type CreateProjectRequest struct {
	Number         string  `json:"number"          validate:"required,max=50"`
	Name           string  `json:"name"            validate:"required,max=255"`
	Description    string  `json:"description"`
	StartDate      string  `json:"start_date"      validate:"required,datetime=2006-01-02"`
	DueDate        string  `json:"due_date"        validate:"required,datetime=2006-01-02"`
	Type           string  `json:"type"            validate:"required"`
	Stage          string  `json:"stage"           validate:"max=100"`
	Comment        string  `json:"comment"`
	PlannedHours   float64 `json:"planned_hours"   validate:"gte=0"`
	ActualHours    float64 `json:"actual_hours"    validate:"gte=0"`
	IsTemplate     bool    `json:"is_template"`
	ResponsibleID  string  `json:"responsible_id"  validate:"required"`
	OrganizationID string  `json:"organization_id" validate:"required"`
	ContactID      *string `json:"contact_id,omitempty"`
}

type UpdateProjectRequest struct {
	Number         *string  `json:"number,omitempty"          validate:"omitempty,min=1,max=50"`
	Name           *string  `json:"name,omitempty"            validate:"omitempty,min=1,max=255"`
	Description    *string  `json:"description,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"      validate:"omitempty,datetime=2006-01-02"`
	DueDate        *string  `json:"due_date,omitempty"        validate:"omitempty,datetime=2006-01-02"`
	Type           *string  `json:"type,omitempty"`
	Stage          *string  `json:"stage,omitempty"           validate:"omitempty,max=100"`
	Comment        *string  `json:"comment,omitempty"`
	PlannedHours   *float64 `json:"planned_hours,omitempty"   validate:"omitempty,gte=0"`
	ActualHours    *float64 `json:"actual_hours,omitempty"    validate:"omitempty,gte=0"`
	ResponsibleID  *string  `json:"responsible_id,omitempty"  validate:"omitempty,min=1"`
	OrganizationID *string  `json:"organization_id,omitempty" validate:"omitempty,min=1"`
	ContactID      *string  `json:"contact_id,omitempty"`
}

type DuplicateProjectRequest struct {
	Number    string `json:"number"     validate:"required,max=50"`
	Name      string `json:"name"       validate:"required,max=255"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	DueDate   string `json:"due_date"   validate:"required,datetime=2006-01-02"`
}

type FromTemplateRequest struct {
	Number         string  `json:"number"          validate:"required,max=50"`
	Name           string  `json:"name"            validate:"required,max=255"`
	StartDate      string  `json:"start_date"      validate:"required,datetime=2006-01-02"`
	DueDate        string  `json:"due_date"        validate:"required,datetime=2006-01-02"`
	ResponsibleID  string  `json:"responsible_id"  validate:"required"`
	OrganizationID string  `json:"organization_id" validate:"required"`
	ContactID      *string `json:"contact_id,omitempty"`
}

type ProjectResponse struct {
	ID                 string    `json:"id"`
	Number             string    `json:"number"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	StartDate          string    `json:"start_date"`
	DueDate            string    `json:"due_date"`
	Type               Type      `json:"type"`
	Stage              string    `json:"stage"`
	Comment            string    `json:"comment"`
	PlannedHours       float64   `json:"planned_hours"`
	ActualHours        float64   `json:"actual_hours"`
	IsTemplate         bool      `json:"is_template"`
	TemplateID         *string   `json:"template_id"`
	ResponsibleID      string    `json:"responsible_id"`
	OrganizationID     string    `json:"organization_id"`
	ContactID          *string   `json:"contact_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Active             bool      `json:"active"`
	DaysRemaining      int       `json:"days_remaining"`
	Progress           float64   `json:"progress"`
	TimeVariance       float64   `json:"time_variance"`
	VariancePercentage float64   `json:"variance_percentage"`
	Overdue            bool      `json:"overdue"`
}

type ProgressResponse struct {
	ProjectID  string  `json:"project_id"`
	Planned    float64 `json:"planned_hours"`
	Actual     float64 `json:"actual_hours"`
	Percentage float64 `json:"percentage"`
}

type VarianceResponse struct {
	ProjectID       string  `json:"project_id"`
	Planned         float64 `json:"planned_hours"`
	Actual          float64 `json:"actual_hours"`
	Delta           float64 `json:"delta"`
	DeltaPercentage float64 `json:"delta_percentage"`
}

func (r CreateProjectRequest) toParams() (ProjectParams, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return ProjectParams{}, err
	}
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return ProjectParams{}, err
	}
	typ, err := ParseType(r.Type)
	if err != nil {
		return ProjectParams{}, err
	}

	return ProjectParams{
		Number:         r.Number,
		Name:           r.Name,
		Description:    r.Description,
		StartDate:      start,
		DueDate:        due,
		Type:           typ,
		Stage:          r.Stage,
		Comment:        r.Comment,
		PlannedHours:   r.PlannedHours,
		ActualHours:    r.ActualHours,
		IsTemplate:     r.IsTemplate,
		ResponsibleID:  r.ResponsibleID,
		OrganizationID: r.OrganizationID,
		ContactID:      r.ContactID,
	}, nil
}

func (r UpdateProjectRequest) toPatch() (Patch, error) {
	patch := Patch{
		Number:         r.Number,
		Name:           r.Name,
		Description:    r.Description,
		Stage:          r.Stage,
		Comment:        r.Comment,
		PlannedHours:   r.PlannedHours,
		ActualHours:    r.ActualHours,
		ResponsibleID:  r.ResponsibleID,
		OrganizationID: r.OrganizationID,
		ContactID:      r.ContactID,
	}

	if r.StartDate != nil {
		start, err := parseDate("start_date", *r.StartDate)
		if err != nil {
			return Patch{}, err
		}
		patch.StartDate = &start
	}
	if r.DueDate != nil {
		due, err := parseDate("due_date", *r.DueDate)
		if err != nil {
			return Patch{}, err
		}
		patch.DueDate = &due
	}
	if r.Type != nil {
		typ, err := ParseType(*r.Type)
		if err != nil {
			return Patch{}, err
		}
		patch.Type = &typ
	}

	return patch, nil
}

func (r DuplicateProjectRequest) toParams() (DuplicateParams, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return DuplicateParams{}, err
	}
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return DuplicateParams{}, err
	}

	return DuplicateParams{
		Number:    r.Number,
		Name:      r.Name,
		StartDate: start,
		DueDate:   due,
	}, nil
}

func (r FromTemplateRequest) toParams() (FromTemplateParams, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return FromTemplateParams{}, err
	}
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return FromTemplateParams{}, err
	}

	return FromTemplateParams{
		Number:         r.Number,
		Name:           r.Name,
		StartDate:      start,
		DueDate:        due,
		ResponsibleID:  r.ResponsibleID,
		OrganizationID: r.OrganizationID,
		ContactID:      r.ContactID,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, core.ValidationError(field, "must be a date formatted as YYYY-MM-DD")
	}
	return t, nil
}

// ToProjectResponse renders p with its derived fields evaluated at now.
func ToProjectResponse(p *Project, now time.Time) ProjectResponse {
	return ProjectResponse{
		ID:                 p.ID,
		Number:             p.Number,
		Name:               p.Name,
		Description:        p.Description,
		StartDate:          p.StartDate.Format(DateLayout),
		DueDate:            p.DueDate.Format(DateLayout),
		Type:               p.Type,
		Stage:              p.Stage,
		Comment:            p.Comment,
		PlannedHours:       p.PlannedHours,
		ActualHours:        p.ActualHours,
		IsTemplate:         p.IsTemplate,
		TemplateID:         p.TemplateID,
		ResponsibleID:      p.ResponsibleID,
		OrganizationID:     p.OrganizationID,
		ContactID:          p.ContactID,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		Active:             p.IsActive(now),
		DaysRemaining:      p.DaysRemaining(now),
		Progress:           p.Progress(),
		TimeVariance:       p.TimeVariance(),
		VariancePercentage: p.VariancePercentage(),
		Overdue:            p.IsOverdue(now),
	}
}

func ToProjectResponseList(projects []Project, now time.Time) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, ToProjectResponse(&p, now))
	}
	return responses
}
