// AngelaMos | 2026
// entity_test.go

package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func validParams() UserParams {
	return UserParams{
		LastName:  "Doe",
		FirstName: "Ann",
		Email:     "A@X.com",
		Password:  "Password1",
		Role:      RoleEmployee,
	}
}

func requireValidationOn(t *testing.T, err error, field string) {
	t.Helper()

	require.ErrorIs(t, err, core.ErrValidation)

	de, ok := core.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, field, de.Field)
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(validParams(), testNow)
	require.NoError(t, err)

	assert.Empty(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.True(t, u.Active)
	assert.Equal(t, RoleEmployee, u.Role)
	assert.Equal(t, testNow, u.CreatedAt)
	assert.NotEqual(t, "Password1", u.PasswordHash)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))

	assert.True(t, u.VerifyPassword("Password1"))
	assert.False(t, u.VerifyPassword("password1"))
	assert.False(t, u.VerifyPassword(""))
}

func TestNewUserRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UserParams)
		field  string
	}{
		{"empty last name", func(p *UserParams) { p.LastName = "  " }, "last_name"},
		{"short first name", func(p *UserParams) { p.FirstName = "A" }, "first_name"},
		{"long last name", func(p *UserParams) { p.LastName = strings.Repeat("x", 101) }, "last_name"},
		{"missing email", func(p *UserParams) { p.Email = "" }, "email"},
		{"malformed email", func(p *UserParams) { p.Email = "not-an-email" }, "email"},
		{"long email", func(p *UserParams) { p.Email = strings.Repeat("a", 250) + "@x.com" }, "email"},
		{"unknown role", func(p *UserParams) { p.Role = "OWNER" }, "role"},
		{"short password", func(p *UserParams) { p.Password = "Pass1" }, "password"},
		{"password without uppercase", func(p *UserParams) { p.Password = "password1" }, "password"},
		{"password without digit", func(p *UserParams) { p.Password = "Password" }, "password"},
		{"long password", func(p *UserParams) { p.Password = "P1" + strings.Repeat("a", 127) }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)

			u, err := NewUser(params, testNow)
			assert.Nil(t, u)
			requireValidationOn(t, err, tt.field)
		})
	}
}

func TestValidatePasswordBoundaries(t *testing.T) {
	assert.NoError(t, ValidatePassword("Abcdefg1"))
	assert.NoError(t, ValidatePassword("A1"+strings.Repeat("b", 126)))
	assert.Error(t, ValidatePassword("Abcdef1"))
}

func TestSetPassword(t *testing.T) {
	u, err := NewUser(validParams(), testNow)
	require.NoError(t, err)
	original := u.PasswordHash

	requireValidationOn(t, u.SetPassword("weak"), "password")
	assert.Equal(t, original, u.PasswordHash)

	require.NoError(t, u.SetPassword("Another2"))
	assert.NotEqual(t, original, u.PasswordHash)
	assert.True(t, u.VerifyPassword("Another2"))
	assert.False(t, u.VerifyPassword("Password1"))
}

func TestVerifyPasswordCorruptHash(t *testing.T) {
	u := &User{PasswordHash: "plaintext"}
	assert.False(t, u.VerifyPassword("plaintext"))
}

func TestApply(t *testing.T) {
	base := &User{
		LastName:     "Doe",
		FirstName:    "Ann",
		Email:        "a@x.com",
		PasswordHash: "hash",
		Role:         RoleManager,
		Active:       true,
	}

	t.Run("changes supplied fields", func(t *testing.T) {
		u := *base
		email := " New@X.com "
		first := "Anna"

		require.NoError(t, u.Apply(Patch{FirstName: &first, Email: &email}))
		assert.Equal(t, "Anna", u.FirstName)
		assert.Equal(t, "new@x.com", u.Email)
		assert.Equal(t, "Doe", u.LastName)
		assert.Equal(t, "Anna Doe", u.FullName())
	})

	t.Run("rejected patch leaves user unchanged", func(t *testing.T) {
		u := *base
		first := "Anna"
		email := "broken"

		err := u.Apply(Patch{FirstName: &first, Email: &email})
		requireValidationOn(t, err, "email")
		assert.Equal(t, *base, u)
	})
}

func TestValidate(t *testing.T) {
	u := &User{LastName: "Doe", FirstName: "Ann", Email: "a@x.com", Role: RoleAdmin}
	requireValidationOn(t, u.Validate(), "password")

	u.PasswordHash = "hash"
	assert.NoError(t, u.Validate())
}

func TestActivation(t *testing.T) {
	u := &User{Active: true}

	u.Deactivate()
	assert.False(t, u.Active)

	u.Activate()
	assert.True(t, u.Active)
}

func TestChangeRole(t *testing.T) {
	u := &User{Role: RoleEmployee}

	require.NoError(t, u.ChangeRole(RoleAdmin))
	assert.True(t, u.IsAdmin())

	requireValidationOn(t, u.ChangeRole("ROOT"), "role")
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		role           Role
		manageProjects bool
		manageUsers    bool
		validateTime   bool
	}{
		{RoleAdmin, true, true, true},
		{RoleManager, true, false, true},
		{RoleEmployee, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			u := &User{Role: tt.role}

			assert.Equal(t, tt.manageProjects, u.CanManageProjects())
			assert.Equal(t, tt.manageUsers, u.CanManageUsers())
			assert.Equal(t, tt.validateTime, u.CanValidateTime())
			assert.True(t, u.CanLogTime())
			assert.True(t, u.CanViewProjects())
		})
	}

	unknown := &User{Role: "GUEST"}
	assert.False(t, unknown.CanLogTime())
	assert.False(t, unknown.CanManageProjects())
}
