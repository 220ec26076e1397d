// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

const userColumns = `
	id, last_name, first_name, email, password_hash, role, active,
	created_at, updated_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, u *User) (*User, error) {
	saved := *u
	saved.ID = uuid.NewString()

	query := `
		INSERT INTO users (
			id, last_name, first_name, email, password_hash, role, active,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		saved.ID,
		saved.LastName,
		saved.FirstName,
		saved.Email,
		saved.PasswordHash,
		saved.Role,
		saved.Active,
		saved.CreatedAt,
	)
	if err := row.Scan(&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &saved, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, offset, limit int) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// ExistsByEmail includes deactivated accounts: an email stays taken for
// as long as its record is retained.
func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, u *User) (*User, error) {
	if _, err := uuid.Parse(u.ID); err != nil {
		return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
	}

	query := `
		UPDATE users
		SET last_name = $2, first_name = $3, email = $4, password_hash = $5,
		    role = $6, active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	updated := *u
	err := r.db.GetContext(ctx, &updated.UpdatedAt, query,
		u.ID,
		u.LastName,
		u.FirstName,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &updated, nil
}

// Delete physically removes the row. Service.Delete deactivates instead
// and never reaches this.
func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	return rows > 0, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
