// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	LastName  string `json:"last_name"  validate:"required,min=2,max=100"`
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	Email     string `json:"email"      validate:"required,email,max=255"`
	Password  string `json:"password"   validate:"required,min=8,max=128"`
	Role      string `json:"role"       validate:"required"`
}

type UpdateUserRequest struct {
	LastName  *string `json:"last_name,omitempty"  validate:"omitempty,min=2,max=100"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email,omitempty"      validate:"omitempty,email,max=255"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type UserResponse struct {
	ID                string    `json:"id"`
	LastName          string    `json:"last_name"`
	FirstName         string    `json:"first_name"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	Active            bool      `json:"active"`
	CanManageProjects bool      `json:"can_manage_projects"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (r CreateUserRequest) toParams() (UserParams, error) {
	role, err := ParseRole(r.Role)
	if err != nil {
		return UserParams{}, err
	}

	return UserParams{
		LastName:  r.LastName,
		FirstName: r.FirstName,
		Email:     r.Email,
		Password:  r.Password,
		Role:      role,
	}, nil
}

func (r UpdateUserRequest) toPatch() Patch {
	return Patch{
		LastName:  r.LastName,
		FirstName: r.FirstName,
		Email:     r.Email,
	}
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		LastName:          u.LastName,
		FirstName:         u.FirstName,
		FullName:          u.FullName(),
		Email:             u.Email,
		Role:              u.Role,
		Active:            u.Active,
		CanManageProjects: u.CanManageProjects(),
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
