// AngelaMos | 2026
// ports.go

package user

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
)

// Repository is the storage port. Lookups of an unknown id or email
// return an error wrapping core.ErrNotFound; unique constraint
// violations wrap core.ErrDuplicateKey.
type Repository interface {
	Save(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, offset, limit int) ([]User, error)
	Count(ctx context.Context) (int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UseCases is the port the transport adapter drives.
type UseCases interface {
	Create(ctx context.Context, p UserParams) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) (Page, error)
	Update(ctx context.Context, id string, patch Patch) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) (*User, error)
	ChangeRole(ctx context.Context, id string, role Role) (*User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (*User, error)
}

type Page struct {
	Items  []User
	Offset int
	Limit  int
	Total  int
}
