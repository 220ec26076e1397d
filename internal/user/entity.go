// AngelaMos | 2026
// entity.go

package user

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

const (
	MinNameLength     = 2
	MaxNameLength     = 100
	MaxEmailLength    = 255
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

const entityName = "user"

var emailValidator = validator.New()

type User struct {
	ID           string    `db:"id"`
	LastName     string    `db:"last_name"`
	FirstName    string    `db:"first_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type UserParams struct {
	LastName  string
	FirstName string
	Email     string
	Password  string
	Role      Role
}

// Patch is a partial profile update. Nil fields are left untouched.
type Patch struct {
	LastName  *string
	FirstName *string
	Email     *string
}

// NewUser normalizes and validates p, then hashes the password. New
// accounts are active.
func NewUser(p UserParams, now time.Time) (*User, error) {
	u := &User{
		LastName:  strings.TrimSpace(p.LastName),
		FirstName: strings.TrimSpace(p.FirstName),
		Email:     NormalizeEmail(p.Email),
		Role:      p.Role,
		Active:    true,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	if err := u.validateProfile(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(p.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	return u, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword checks plain against the password policy and returns its
// argon2id hash.
func HashPassword(plain string) (string, error) {
	if err := ValidatePassword(plain); err != nil {
		return "", err
	}

	hash, err := core.HashPassword(plain)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func ValidatePassword(plain string) error {
	n := utf8.RuneCountInString(plain)
	switch {
	case n < MinPasswordLength:
		return core.ValidationError("password", "must be at least 8 characters")
	case n > MaxPasswordLength:
		return core.ValidationError("password", "must be at most 128 characters")
	case !strings.ContainsFunc(plain, unicode.IsUpper):
		return core.ValidationError("password", "must contain an uppercase letter")
	case !strings.ContainsFunc(plain, unicode.IsDigit):
		return core.ValidationError("password", "must contain a digit")
	}
	return nil
}

// VerifyPassword reports whether plain matches the stored hash. A
// corrupt hash never verifies.
func (u *User) VerifyPassword(plain string) bool {
	ok, err := core.VerifyPassword(plain, u.PasswordHash)
	if err != nil {
		return false
	}
	return ok
}

// SetPassword replaces the hash. On a policy violation the current hash
// is kept.
func (u *User) SetPassword(plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) Validate() error {
	if err := u.validateProfile(); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return core.ValidationError("password", "is required")
	}
	return nil
}

func (u *User) validateProfile() error {
	if err := validateName("last_name", u.LastName); err != nil {
		return err
	}
	if err := validateName("first_name", u.FirstName); err != nil {
		return err
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if !u.Role.IsValid() {
		return core.ValidationError("role", "must be one of ADMIN, MANAGER, EMPLOYEE")
	}
	return nil
}

func validateName(field, name string) error {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return core.ValidationError(field, "is required")
	case n < MinNameLength:
		return core.ValidationError(field, "must be at least 2 characters")
	case n > MaxNameLength:
		return core.ValidationError(field, "must be at most 100 characters")
	}
	return nil
}

func ValidateEmail(email string) error {
	switch {
	case email == "":
		return core.ValidationError("email", "is required")
	case len(email) > MaxEmailLength:
		return core.ValidationError("email", "must be at most 255 characters")
	case emailValidator.Var(email, "email") != nil:
		return core.ValidationError("email", "must be a valid email address")
	}
	return nil
}

// Apply validates the patched user as a whole and only then commits it.
func (u *User) Apply(patch Patch) error {
	next := *u

	if patch.LastName != nil {
		next.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.FirstName != nil {
		next.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.Email != nil {
		next.Email = NormalizeEmail(*patch.Email)
	}

	if err := next.validateProfile(); err != nil {
		return err
	}

	*u = next
	return nil
}

func (u *User) Activate() {
	u.Active = true
}

func (u *User) Deactivate() {
	u.Active = false
}

func (u *User) ChangeRole(r Role) error {
	if !r.IsValid() {
		return core.ValidationError("role", "must be one of ADMIN, MANAGER, EMPLOYEE")
	}
	u.Role = r
	return nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) CanManageProjects() bool {
	switch u.Role {
	case RoleAdmin, RoleManager:
		return true
	case RoleEmployee:
		return false
	default:
		return false
	}
}

func (u *User) CanManageUsers() bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleManager, RoleEmployee:
		return false
	default:
		return false
	}
}

func (u *User) CanValidateTime() bool {
	switch u.Role {
	case RoleAdmin, RoleManager:
		return true
	case RoleEmployee:
		return false
	default:
		return false
	}
}

func (u *User) CanLogTime() bool {
	return u.Role.IsValid()
}

func (u *User) CanViewProjects() bool {
	return u.Role.IsValid()
}

func (u *User) HasPermission(p Permission) bool {
	return u.Role.HasPermission(p)
}
