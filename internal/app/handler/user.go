package handler

import (
	"net/http"
	"strings"

	"api_yamdb/internal/app/ds"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       string  `json:"bio"`
	Role      ds.Role `json:"role"`
}

func userResponse(u *ds.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// GetUsers godoc
// @Summary Список пользователей
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Поиск по имени пользователя"
// @Success 200 {array} UserResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
func (h *Handler) GetUsers(ctx *gin.Context) {
	limit, offset := paginate(ctx)

	users, err := h.Repository.GetUsers(ctx.Query("search"), limit, offset)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, userResponse(&users[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// POST /api/users - создание пользователя администратором
func (h *Handler) CreateUser(ctx *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required,max=150"`
		Email     string `json:"email" binding:"required,email,max=254"`
		FirstName string `json:"first_name" binding:"max=150"`
		LastName  string `json:"last_name" binding:"max=150"`
		Bio       string `json:"bio"`
		Role      string `json:"role"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	if strings.EqualFold(req.Username, "me") {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
			"имя пользователя \"me\" не разрешено")
		return
	}

	if !usernameRegexp.MatchString(req.Username) {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
			"имя пользователя содержит недопустимые символы")
		return
	}

	role := ds.Role(req.Role)
	if req.Role == "" {
		role = ds.RoleUser
	}
	if !ds.ValidRole(role) {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "role", "недопустимая роль")
		return
	}

	if _, err := h.Repository.GetUserByUsername(req.Username); err == nil {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
			"пользователь с таким именем уже существует")
		return
	}

	if _, err := h.Repository.GetUserByEmail(req.Email); err == nil {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "email",
			"этот email уже зарегистрирован")
		return
	}

	user := &ds.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := h.Repository.CreateUser(user); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, userResponse(user))
}

// GET /api/users/:username
func (h *Handler) GetUser(ctx *gin.Context) {
	user, err := h.Repository.GetUserByUsername(ctx.Param("username"))
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(&user))
}

// PATCH /api/users/:username - правка пользователя администратором.
// Единственный путь, которым меняется роль.
func (h *Handler) UpdateUser(ctx *gin.Context) {
	user, err := h.Repository.GetUserByUsername(ctx.Param("username"))
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	var req struct {
		Username  *string `json:"username"`
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Bio       *string `json:"bio"`
		Role      *string `json:"role"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if req.Username != nil && *req.Username != user.Username {
		if strings.EqualFold(*req.Username, "me") {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
				"имя пользователя \"me\" не разрешено")
			return
		}
		if !usernameRegexp.MatchString(*req.Username) {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
				"имя пользователя содержит недопустимые символы")
			return
		}
		if _, err := h.Repository.GetUserByUsername(*req.Username); err == nil {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
				"пользователь с таким именем уже существует")
			return
		}
		updates["username"] = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, err := h.Repository.GetUserByEmail(*req.Email); err == nil && existing.UserID != user.UserID {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "email",
				"этот email уже зарегистрирован")
			return
		}
		updates["email"] = *req.Email
	}

	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if req.Role != nil {
		role := ds.Role(*req.Role)
		if !ds.ValidRole(role) {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "role", "недопустимая роль")
			return
		}
		updates["role"] = role
	}

	if len(updates) > 0 {
		if err := h.Repository.UpdateUser(user.UserID, updates); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	updated, err := h.Repository.GetUserByID(user.UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(&updated))
}

// DELETE /api/users/:username
func (h *Handler) DeleteUser(ctx *gin.Context) {
	if err := h.Repository.DeleteUserByUsername(ctx.Param("username")); err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Собственный профиль
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/me [get]
func (h *Handler) Me(ctx *gin.Context) {
	user, err := h.Repository.GetUserByID(h.actor(ctx).UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(&user))
}

// PATCH /api/users/me - самостоятельная правка профиля.
// Роль и служебные флаги здесь не принимаются: поле role в запросе
// игнорируется, повыситься через свой профиль нельзя.
func (h *Handler) UpdateMe(ctx *gin.Context) {
	user, err := h.Repository.GetUserByID(h.actor(ctx).UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	var req struct {
		Username  *string `json:"username"`
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Bio       *string `json:"bio"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if req.Username != nil && *req.Username != user.Username {
		if strings.EqualFold(*req.Username, "me") {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
				"имя пользователя \"me\" не разрешено")
			return
		}
		if !usernameRegexp.MatchString(*req.Username) {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
				"имя пользователя содержит недопустимые символы")
			return
		}
		if _, err := h.Repository.GetUserByUsername(*req.Username); err == nil {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "username",
				"пользователь с таким именем уже существует")
			return
		}
		updates["username"] = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, err := h.Repository.GetUserByEmail(*req.Email); err == nil && existing.UserID != user.UserID {
			h.fieldErrorHandler(ctx, http.StatusBadRequest, "email",
				"этот email уже зарегистрирован")
			return
		}
		updates["email"] = *req.Email
	}

	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := h.Repository.UpdateUser(user.UserID, updates); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	updated, err := h.Repository.GetUserByID(user.UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(&updated))
}
