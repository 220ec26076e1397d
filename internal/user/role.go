// AngelaMos | 2026
// role.go

package user

import (
	"strings"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEmployee}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts any letter case and surrounding whitespace.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", core.ValidationError("role", "must be one of ADMIN, MANAGER, EMPLOYEE")
	}
	return r, nil
}

type Permission string

const (
	PermCreateProject Permission = "create_project"
	PermUpdateProject Permission = "update_project"
	PermDeleteProject Permission = "delete_project"
	PermCreateTask    Permission = "create_task"
	PermUpdateTask    Permission = "update_task"
	PermValidateTime  Permission = "validate_time"
	PermLogTime       Permission = "log_time"
	PermViewProjects  Permission = "view_projects"
	PermManageUsers   Permission = "manage_users"
)

var managerPermissions = map[Permission]struct{}{
	PermCreateProject: {},
	PermUpdateProject: {},
	PermCreateTask:    {},
	PermUpdateTask:    {},
	PermValidateTime:  {},
	PermLogTime:       {},
	PermViewProjects:  {},
}

var employeePermissions = map[Permission]struct{}{
	PermLogTime:      {},
	PermViewProjects: {},
}

// HasPermission reports whether the role grants p. Admins hold every
// permission, including ones added later.
func (r Role) HasPermission(p Permission) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleManager:
		_, ok := managerPermissions[p]
		return ok
	case RoleEmployee:
		_, ok := employeePermissions[p]
		return ok
	default:
		return false
	}
}
