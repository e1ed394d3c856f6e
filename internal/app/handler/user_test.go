package handler

import (
	"net/http"
	"testing"

	"api_yamdb/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersAdminOnly(t *testing.T) {
	h, router, _ := newTestEnv(t)

	w := doRequest(t, router, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user := createUser(t, h, "reader", ds.RoleUser)
	w = doRequest(t, router, http.MethodGet, "/api/users", accessToken(t, h, &user), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Модератор тоже не админ
	moderator := createUser(t, h, "moder", ds.RoleModerator)
	w = doRequest(t, router, http.MethodGet, "/api/users", accessToken(t, h, &moderator), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := createUser(t, h, "boss", ds.RoleAdmin)
	w = doRequest(t, router, http.MethodGet, "/api/users", accessToken(t, h, &admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffFlagGrantsAdmin(t *testing.T) {
	h, router, _ := newTestEnv(t)

	staff := &ds.User{
		Username: "django",
		Email:    "django@example.com",
		Role:     ds.RoleUser,
		IsStaff:  true,
	}
	require.NoError(t, h.Repository.CreateUser(staff))

	w := doRequest(t, router, http.MethodGet, "/api/users", accessToken(t, h, staff), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminCreatesUser(t *testing.T) {
	h, router, _ := newTestEnv(t)
	admin := createUser(t, h, "boss", ds.RoleAdmin)
	token := accessToken(t, h, &admin)

	w := doRequest(t, router, http.MethodPost, "/api/users", token, gin.H{
		"username": "newmoder",
		"email":    "newmoder@example.com",
		"role":     "moderator",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp UserResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, ds.RoleModerator, resp.Role)

	// Недопустимая роль отклоняется, а не заменяется умолчанием
	w = doRequest(t, router, http.MethodPost, "/api/users", token, gin.H{
		"username": "strange",
		"email":    "strange@example.com",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp map[string][]string
	decodeJSON(t, w, &errResp)
	assert.Contains(t, errResp, "role")
}

func TestAdminChangesRole(t *testing.T) {
	h, router, _ := newTestEnv(t)
	admin := createUser(t, h, "boss", ds.RoleAdmin)
	user := createUser(t, h, "reader", ds.RoleUser)

	w := doRequest(t, router, http.MethodPatch, "/api/users/reader",
		accessToken(t, h, &admin), gin.H{"role": "moderator"})
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := h.Repository.GetUserByID(user.UserID)
	require.NoError(t, err)
	assert.Equal(t, ds.RoleModerator, updated.Role)
}

func TestDeleteUser(t *testing.T) {
	h, router, _ := newTestEnv(t)
	admin := createUser(t, h, "boss", ds.RoleAdmin)
	createUser(t, h, "doomed", ds.RoleUser)
	token := accessToken(t, h, &admin)

	w := doRequest(t, router, http.MethodDelete, "/api/users/doomed", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/users/doomed", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMe(t *testing.T) {
	h, router, _ := newTestEnv(t)

	w := doRequest(t, router, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user := createUser(t, h, "reader", ds.RoleUser)
	w = doRequest(t, router, http.MethodGet, "/api/users/me", accessToken(t, h, &user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "reader", resp.Username)
	assert.Equal(t, ds.RoleUser, resp.Role)
}

func TestUpdateMe(t *testing.T) {
	h, router, _ := newTestEnv(t)
	user := createUser(t, h, "reader", ds.RoleUser)
	token := accessToken(t, h, &user)

	w := doRequest(t, router, http.MethodPatch, "/api/users/me", token,
		gin.H{"bio": "люблю кино", "first_name": "Иван"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "люблю кино", resp.Bio)
	assert.Equal(t, "Иван", resp.FirstName)
}

func TestUpdateMeIgnoresRole(t *testing.T) {
	h, router, _ := newTestEnv(t)
	user := createUser(t, h, "reader", ds.RoleUser)

	// Повышение себе роли через профиль не проходит: поле игнорируется
	w := doRequest(t, router, http.MethodPatch, "/api/users/me",
		accessToken(t, h, &user), gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := h.Repository.GetUserByID(user.UserID)
	require.NoError(t, err)
	assert.Equal(t, ds.RoleUser, updated.Role)
}

func TestUpdateMeUsernameConflict(t *testing.T) {
	h, router, _ := newTestEnv(t)
	createUser(t, h, "taken", ds.RoleUser)
	user := createUser(t, h, "reader", ds.RoleUser)

	w := doRequest(t, router, http.MethodPatch, "/api/users/me",
		accessToken(t, h, &user), gin.H{"username": "taken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string][]string
	decodeJSON(t, w, &resp)
	assert.Contains(t, resp, "username")
}

func TestGetUsersSearch(t *testing.T) {
	h, router, _ := newTestEnv(t)
	admin := createUser(t, h, "boss", ds.RoleAdmin)
	createUser(t, h, "alpha", ds.RoleUser)
	createUser(t, h, "beta", ds.RoleUser)

	w := doRequest(t, router, http.MethodGet, "/api/users?search=alp",
		accessToken(t, h, &admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []UserResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "alpha", resp[0].Username)
}
