package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"роль admin", User{Role: RoleAdmin}, true},
		{"суперпользователь с ролью user", User{Role: RoleUser, IsSuperuser: true}, true},
		{"is_staff с ролью user", User{Role: RoleUser, IsStaff: true}, true},
		{"суперпользователь с ролью moderator", User{Role: RoleModerator, IsSuperuser: true}, true},
		{"обычный пользователь", User{Role: RoleUser}, false},
		{"модератор", User{Role: RoleModerator}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.IsAdmin())
		})
	}
}

func TestIsModerator(t *testing.T) {
	assert.True(t, (&User{Role: RoleModerator}).IsModerator())
	assert.False(t, (&User{Role: RoleUser}).IsModerator())
	// Флаги персонала модератором не делают
	assert.False(t, (&User{Role: RoleUser, IsStaff: true}).IsModerator())
	assert.False(t, (&User{Role: RoleAdmin}).IsModerator())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleModerator))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(Role("")))
	assert.False(t, ValidRole(Role("superuser")))
	assert.False(t, ValidRole(Role("Admin")))
}
