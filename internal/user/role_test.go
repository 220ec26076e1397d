// AngelaMos | 2026
// role_test.go

package user

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{" manager ", RoleManager},
		{"Employee", RoleEmployee},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseRole("superuser")
	requireValidationOn(t, err, "role")

	_, err = ParseRole("")
	requireValidationOn(t, err, "role")
}

func TestRolePermissions(t *testing.T) {
	all := []Permission{
		PermCreateProject,
		PermUpdateProject,
		PermDeleteProject,
		PermCreateTask,
		PermUpdateTask,
		PermValidateTime,
		PermLogTime,
		PermViewProjects,
		PermManageUsers,
	}

	granted := map[Role][]Permission{
		RoleAdmin: all,
		RoleManager: {
			PermCreateProject,
			PermUpdateProject,
			PermCreateTask,
			PermUpdateTask,
			PermValidateTime,
			PermLogTime,
			PermViewProjects,
		},
		RoleEmployee: {PermLogTime, PermViewProjects},
	}

	for _, role := range Roles() {
		for _, perm := range all {
			want := slices.Contains(granted[role], perm)
			assert.Equal(t, want, role.HasPermission(perm), "%s/%s", role, perm)
		}
	}

	assert.True(t, RoleAdmin.HasPermission("archive_everything"))
	assert.False(t, Role("GUEST").HasPermission(PermViewProjects))
}
