// AngelaMos | 2026
// entity_test.go

package project

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func validParams() ProjectParams {
	return ProjectParams{
		Number:         "P-1",
		Name:           "Alpha",
		StartDate:      day("2025-01-01"),
		DueDate:        day("2025-12-31"),
		Type:           TypeInternal,
		PlannedHours:   200,
		ActualHours:    50,
		ResponsibleID:  "user-1",
		OrganizationID: "org-1",
	}
}

func requireValidationOn(t *testing.T, err error, field string) {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, core.ErrValidation)

	de, ok := core.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, field, de.Field)
}

func TestNewProject(t *testing.T) {
	now := day("2025-06-01")

	t.Run("valid input", func(t *testing.T) {
		p, err := NewProject(validParams(), now)
		require.NoError(t, err)

		assert.Empty(t, p.ID)
		assert.True(t, p.DueDate.After(p.StartDate))
		assert.GreaterOrEqual(t, p.PlannedHours, 0.0)
		assert.GreaterOrEqual(t, p.ActualHours, 0.0)
		assert.Equal(t, now, p.CreatedAt)
	})

	t.Run("trims and normalizes", func(t *testing.T) {
		params := validParams()
		params.Number = "  P-1 "
		params.Name = "\tAlpha\n"
		params.StartDate = time.Date(2025, 1, 1, 17, 30, 0, 0, time.FixedZone("X", 3600))
		blank := "   "
		params.ContactID = &blank

		p, err := NewProject(params, now)
		require.NoError(t, err)

		assert.Equal(t, "P-1", p.Number)
		assert.Equal(t, "Alpha", p.Name)
		assert.Equal(t, day("2025-01-01"), p.StartDate)
		assert.Nil(t, p.ContactID)
	})

	tests := []struct {
		name   string
		mutate func(*ProjectParams)
		field  string
	}{
		{"empty number", func(p *ProjectParams) { p.Number = " " }, "number"},
		{"long number", func(p *ProjectParams) { p.Number = strings.Repeat("n", 51) }, "number"},
		{"empty name", func(p *ProjectParams) { p.Name = "" }, "name"},
		{"long name", func(p *ProjectParams) { p.Name = strings.Repeat("n", 256) }, "name"},
		{"missing start", func(p *ProjectParams) { p.StartDate = time.Time{} }, "start_date"},
		{"due equals start", func(p *ProjectParams) { p.DueDate = p.StartDate }, "due_date"},
		{"due before start", func(p *ProjectParams) { p.DueDate = day("2024-12-31") }, "due_date"},
		{"unknown type", func(p *ProjectParams) { p.Type = "RESEARCH" }, "type"},
		{"long stage", func(p *ProjectParams) { p.Stage = strings.Repeat("s", 101) }, "stage"},
		{"negative planned", func(p *ProjectParams) { p.PlannedHours = -1 }, "planned_hours"},
		{"negative actual", func(p *ProjectParams) { p.ActualHours = -0.5 }, "actual_hours"},
		{"nan planned", func(p *ProjectParams) { p.PlannedHours = math.NaN() }, "planned_hours"},
		{"missing responsible", func(p *ProjectParams) { p.ResponsibleID = "" }, "responsible_id"},
		{"missing organization", func(p *ProjectParams) { p.OrganizationID = "" }, "organization_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)

			p, err := NewProject(params, now)
			assert.Nil(t, p)
			requireValidationOn(t, err, tt.field)
		})
	}
}

func TestNewProjectFromTemplate(t *testing.T) {
	now := day("2025-06-01")

	tplParams := validParams()
	tplParams.IsTemplate = true
	tplParams.Description = "blueprint"
	tplParams.Stage = "PLANNED"
	tplParams.ActualHours = 80
	tpl, err := NewProject(tplParams, now)
	require.NoError(t, err)
	tpl.ID = "tpl-1"

	fromParams := FromTemplateParams{
		Number:         "P-2",
		Name:           "Beta",
		StartDate:      day("2025-07-01"),
		DueDate:        day("2025-09-30"),
		ResponsibleID:  "user-2",
		OrganizationID: "org-2",
	}

	t.Run("copies template defaults", func(t *testing.T) {
		p, err := NewProjectFromTemplate(tpl, fromParams, now)
		require.NoError(t, err)

		assert.Equal(t, "P-2", p.Number)
		assert.Equal(t, "blueprint", p.Description)
		assert.Equal(t, "PLANNED", p.Stage)
		assert.Equal(t, tpl.Type, p.Type)
		assert.InDelta(t, 200, p.PlannedHours, 0)
		assert.Zero(t, p.ActualHours)
		assert.False(t, p.IsTemplate)
		require.NotNil(t, p.TemplateID)
		assert.Equal(t, "tpl-1", *p.TemplateID)
		assert.True(t, p.CreatedFromTemplate())
		assert.Equal(t, "user-2", p.ResponsibleID)
	})

	t.Run("rejects non-template", func(t *testing.T) {
		plain := *tpl
		plain.IsTemplate = false

		p, err := NewProjectFromTemplate(&plain, fromParams, now)
		assert.Nil(t, p)
		requireValidationOn(t, err, "template_id")
	})
}

func TestApply(t *testing.T) {
	now := day("2025-06-01")

	t.Run("changes only supplied fields", func(t *testing.T) {
		p, err := NewProject(validParams(), now)
		require.NoError(t, err)

		name := " Alpha 2 "
		hours := 75.0
		require.NoError(t, p.Apply(Patch{Name: &name, ActualHours: &hours}))

		assert.Equal(t, "Alpha 2", p.Name)
		assert.InDelta(t, 75, p.ActualHours, 0)
		assert.Equal(t, "P-1", p.Number)
		assert.InDelta(t, 200, p.PlannedHours, 0)
	})

	t.Run("rejected patch leaves project unchanged", func(t *testing.T) {
		p, err := NewProject(validParams(), now)
		require.NoError(t, err)
		before := *p

		name := "Renamed"
		due := day("2024-01-01")
		err = p.Apply(Patch{Name: &name, DueDate: &due})

		requireValidationOn(t, err, "due_date")
		assert.Equal(t, before, *p)
	})

	t.Run("empty contact clears reference", func(t *testing.T) {
		params := validParams()
		contact := "contact-1"
		params.ContactID = &contact
		p, err := NewProject(params, now)
		require.NoError(t, err)

		empty := ""
		require.NoError(t, p.Apply(Patch{ContactID: &empty}))
		assert.Nil(t, p.ContactID)
	})
}

func TestDuplicate(t *testing.T) {
	now := day("2025-06-01")

	params := validParams()
	params.ActualHours = 180
	params.Comment = "keep me"
	src, err := NewProject(params, now)
	require.NoError(t, err)
	src.ID = "src-1"

	cp, err := src.Duplicate(DuplicateParams{
		Number:    "P-1b",
		Name:      "Alpha copy",
		StartDate: day("2026-01-01"),
		DueDate:   day("2026-06-30"),
	}, now)
	require.NoError(t, err)

	assert.Empty(t, cp.ID)
	assert.Zero(t, cp.ActualHours)
	assert.Equal(t, "P-1b", cp.Number)
	assert.Equal(t, "keep me", cp.Comment)
	assert.InDelta(t, 200, cp.PlannedHours, 0)
	assert.InDelta(t, 180, src.ActualHours, 0, "source is untouched")

	_, err = src.Duplicate(DuplicateParams{
		Number:    "P-1c",
		Name:      "Alpha bad",
		StartDate: day("2026-06-30"),
		DueDate:   day("2026-01-01"),
	}, now)
	requireValidationOn(t, err, "due_date")
}

func TestTemplateFlag(t *testing.T) {
	p, err := NewProject(validParams(), day("2025-06-01"))
	require.NoError(t, err)

	p.MarkAsTemplate()
	assert.True(t, p.IsTemplate)

	p.UnmarkTemplate()
	assert.False(t, p.IsTemplate)
}

func TestDerivedValues(t *testing.T) {
	p, err := NewProject(validParams(), day("2025-01-01"))
	require.NoError(t, err)

	t.Run("alpha scenario mid year", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

		assert.InDelta(t, 25.0, p.Progress(), 0)
		assert.False(t, p.IsOverdue(now))
		assert.True(t, p.IsActive(now))
		assert.Equal(t, 213, p.DaysRemaining(now))
		assert.InDelta(t, -150, p.TimeVariance(), 0)
		assert.InDelta(t, -75, p.VariancePercentage(), 0)
	})

	t.Run("due date itself is still active", func(t *testing.T) {
		now := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)

		assert.True(t, p.IsActive(now))
		assert.Equal(t, 0, p.DaysRemaining(now))
		assert.False(t, p.IsOverdue(now))
	})

	t.Run("after due date", func(t *testing.T) {
		now := day("2026-02-01")

		assert.False(t, p.IsActive(now))
		assert.Equal(t, 0, p.DaysRemaining(now))
		assert.True(t, p.IsOverdue(now))
	})
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		planned float64
		actual  float64
		want    float64
	}{
		{"zero planned", 0, 40, 0},
		{"zero both", 0, 0, 0},
		{"quarter", 200, 50, 25},
		{"rounded", 3, 1, 33.33},
		{"capped at 100", 100, 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Project{PlannedHours: tt.planned, ActualHours: tt.actual}
			assert.InDelta(t, tt.want, p.Progress(), 0.0001)
		})
	}
}

func TestVariancePercentageZeroPlanned(t *testing.T) {
	p := &Project{PlannedHours: 0, ActualHours: 10}
	assert.Zero(t, p.VariancePercentage())
	assert.InDelta(t, 10, p.TimeVariance(), 0)
}

func TestIsOverdue(t *testing.T) {
	now := day("2025-06-01")

	base := Project{DueDate: day("2025-12-31"), PlannedHours: 100}

	overHours := base
	overHours.ActualHours = 101
	assert.True(t, overHours.IsOverdue(now), "over planned hours")

	completed := overHours
	completed.Stage = "completed"
	assert.True(t, completed.IsCompleted())
	assert.False(t, completed.IsOverdue(now), "completed projects are never overdue")

	late := base
	late.DueDate = day("2025-05-31")
	assert.True(t, late.IsOverdue(now))
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" maintenance ")
	require.NoError(t, err)
	assert.Equal(t, TypeMaintenance, typ)

	for _, typ := range Types() {
		assert.True(t, typ.IsValid())
	}

	_, err = ParseType("other")
	requireValidationOn(t, err, "type")
}
