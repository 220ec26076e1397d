// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

// Observer receives one call per service operation.
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

func (s *Service) Create(ctx context.Context, p UserParams) (u *User, err error) {
	ctx, done := s.begin(ctx, "create")
	defer func() { done(err) }()

	if email := NormalizeEmail(p.Email); email != "" {
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return nil, err
		}
	}

	u, err = NewUser(p, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, u)
	if errors.Is(err, core.ErrDuplicateKey) {
		return nil, core.AlreadyExistsError(entityName, "email", u.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created",
		"user_id", saved.ID,
		"role", saved.Role,
	)
	return saved, nil
}

func (s *Service) Get(ctx context.Context, id string) (u *User, err error) {
	ctx, done := s.begin(ctx, "get")
	defer func() { done(err) }()

	return s.load(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (u *User, err error) {
	ctx, done := s.begin(ctx, "get_by_email")
	defer func() { done(err) }()

	email = NormalizeEmail(email)

	u, err = s.repo.FindByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return nil, core.NotFoundError(entityName, email)
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) (page Page, err error) {
	ctx, done := s.begin(ctx, "list")
	defer func() { done(err) }()

	if err := core.ValidatePage(offset, limit); err != nil {
		return Page{}, err
	}

	items, err := s.repo.FindAll(ctx, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("count users: %w", err)
	}

	return Page{Items: items, Offset: offset, Limit: limit, Total: total}, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (u *User, err error) {
	ctx, done := s.begin(ctx, "update")
	defer func() { done(err) }()

	u, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	oldEmail := u.Email

	if err := u.Apply(patch); err != nil {
		return nil, err
	}

	if u.Email != oldEmail {
		if err := s.ensureEmailFree(ctx, u.Email); err != nil {
			return nil, err
		}
	}

	updated, err := s.update(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user updated", "user_id", updated.ID)
	return updated, nil
}

// Delete deactivates the account. Records are kept for history and are
// still returned by Get.
func (s *Service) Delete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, done := s.begin(ctx, "delete")
	defer func() { done(err) }()

	if _, err := s.setActive(ctx, id, false); err != nil {
		return false, err
	}

	s.logger.InfoContext(ctx, "user deactivated", "user_id", id)
	return true, nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (u *User, err error) {
	ctx, done := s.begin(ctx, "set_active")
	defer func() { done(err) }()

	return s.setActive(ctx, id, active)
}

func (s *Service) ChangeRole(ctx context.Context, id string, role Role) (u *User, err error) {
	ctx, done := s.begin(ctx, "change_role")
	defer func() { done(err) }()

	if !role.IsValid() {
		return nil, core.ValidationError("role", "must be one of ADMIN, MANAGER, EMPLOYEE")
	}

	u, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := u.Role
	if previous == role {
		return u, nil
	}

	if err := u.ChangeRole(role); err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user role changed",
		"user_id", updated.ID,
		"from", previous,
		"to", updated.Role,
	)
	return updated, nil
}

// ChangePassword requires proof of the current password. A failed proof
// is an authorization error and nothing is written.
func (s *Service) ChangePassword(
	ctx context.Context,
	id, oldPassword, newPassword string,
) (u *User, err error) {
	ctx, done := s.begin(ctx, "change_password")
	defer func() { done(err) }()

	u, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !u.VerifyPassword(oldPassword) {
		core.AddSpanEvent(ctx, "user.password_rejected")
		s.logger.WarnContext(ctx, "password change rejected", "user_id", id)
		return nil, core.AuthorizationError("current password is incorrect")
	}

	if err := u.SetPassword(newPassword); err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user password changed", "user_id", updated.ID)
	return updated, nil
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (*User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Active == active {
		return u, nil
	}

	if active {
		u.Activate()
	} else {
		u.Deactivate()
	}

	return s.update(ctx, u)
}

func (s *Service) load(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, core.NotFoundError(entityName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check user email: %w", err)
	}
	if exists {
		return core.AlreadyExistsError(entityName, "email", email)
	}
	return nil
}

func (s *Service) update(ctx context.Context, u *User) (*User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	u.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, u)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return nil, core.NotFoundError(entityName, u.ID)
	case errors.Is(err, core.ErrDuplicateKey):
		return nil, core.AlreadyExistsError(entityName, "email", u.Email)
	case err != nil:
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *Service) begin(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := core.StartSpan(ctx, "user."+op)

	return ctx, func(err error) {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
		span.End()
		s.observer.ObserveOperation(entityName, op, start, err)
	}
}
