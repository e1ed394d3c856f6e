package authz

import (
	"net/http"
	"testing"

	"api_yamdb/internal/app/ds"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = Actor{}
	plainUser = Actor{UserID: 1, Role: ds.RoleUser, Authenticated: true}
	moderator = Actor{UserID: 2, Role: ds.RoleModerator, Authenticated: true}
	admin     = Actor{UserID: 3, Role: ds.RoleAdmin, Authenticated: true}
	staff     = Actor{UserID: 4, Role: ds.RoleUser, IsStaff: true, Authenticated: true}
)

func TestSafeMethod(t *testing.T) {
	assert.True(t, SafeMethod(http.MethodGet))
	assert.True(t, SafeMethod(http.MethodHead))
	assert.True(t, SafeMethod(http.MethodOptions))
	assert.False(t, SafeMethod(http.MethodPost))
	assert.False(t, SafeMethod(http.MethodPatch))
	assert.False(t, SafeMethod(http.MethodDelete))
}

func TestAdminOnly(t *testing.T) {
	assert.False(t, AdminOnly(anonymous))
	assert.False(t, AdminOnly(plainUser))
	assert.False(t, AdminOnly(moderator))
	assert.True(t, AdminOnly(admin))
	// is_staff равнозначен роли admin
	assert.True(t, AdminOnly(staff))
}

func TestAdminOrReadOnly(t *testing.T) {
	// Чтение доступно всем, включая анонимов
	assert.True(t, AdminOrReadOnly(anonymous, http.MethodGet))
	assert.True(t, AdminOrReadOnly(plainUser, http.MethodGet))

	// Запись только администратору
	assert.False(t, AdminOrReadOnly(anonymous, http.MethodPost))
	assert.False(t, AdminOrReadOnly(plainUser, http.MethodPost))
	assert.False(t, AdminOrReadOnly(moderator, http.MethodDelete))
	assert.True(t, AdminOrReadOnly(admin, http.MethodPost))
	assert.True(t, AdminOrReadOnly(staff, http.MethodDelete))
}

func TestAdminModeratorAuthorOrReadOnly(t *testing.T) {
	const ownerID = 1

	assert.True(t, AdminModeratorAuthorOrReadOnly(anonymous, http.MethodGet, ownerID))

	// Автор правит свое, чужое — нет
	assert.True(t, AdminModeratorAuthorOrReadOnly(plainUser, http.MethodPatch, ownerID))
	assert.False(t, AdminModeratorAuthorOrReadOnly(plainUser, http.MethodPatch, 99))

	// Модератор и админ правят чужое
	assert.True(t, AdminModeratorAuthorOrReadOnly(moderator, http.MethodPatch, 99))
	assert.True(t, AdminModeratorAuthorOrReadOnly(admin, http.MethodDelete, 99))
	assert.True(t, AdminModeratorAuthorOrReadOnly(staff, http.MethodDelete, 99))

	// Аноним не пишет даже при совпадении нулевого UserID
	assert.False(t, AdminModeratorAuthorOrReadOnly(anonymous, http.MethodPost, 0))
}
