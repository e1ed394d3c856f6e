package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"api_yamdb/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

var usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)

type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// SignUp godoc
// @Summary Регистрация пользователя
// @Description Создание пользователя и отправка кода подтверждения на почту
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Имя пользователя и почта"
// @Success 200 {object} SignUpRequest
// @Failure 400 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *Handler) SignUp(ctx *gin.Context) {
	var req SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	// Повторная регистрация той же пары (username, email) — не конфликт:
	// просто выдаем новый код, вторая запись не создается
	if user, err := h.Repository.GetUserByUsernameAndEmail(req.Username, req.Email); err == nil {
		h.issueAndSendCode(&user)
		ctx.JSON(http.StatusOK, req)
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

	if existing, err := h.Repository.GetUserByUsername(req.Username); err == nil && existing.Email != req.Email {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "email",
			"этот username уже зарегистрирован с другим email")
		return
	}

	if _, err := h.Repository.GetUserByEmail(req.Email); err == nil {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "email",
			"этот email уже зарегистрирован")
		return
	}

	user := &ds.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     ds.RoleUser,
	}

	if err := h.Repository.CreateUser(user); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	h.issueAndSendCode(user)

	// 200, а не 201: учетная запись не подтверждена, пока код не обменян
	ctx.JSON(http.StatusOK, req)
}

// issueAndSendCode выдает код и отправляет письмо. Ошибка доставки
// логируется и не откатывает уже созданного пользователя.
func (h *Handler) issueAndSendCode(user *ds.User) {
	code, err := h.Tokens.Issue(user)
	if err != nil {
		logrus.Errorf("failed to issue confirmation code for %s: %v", user.Username, err)
		return
	}

	err = h.Mail.Send("Код подтверждения", fmt.Sprintf("Ваш код: %s", code), user.Email)
	if err != nil {
		logrus.Errorf("failed to send confirmation code to %s: %v", user.Email, err)
	}
}

// ObtainToken godoc
// @Summary Получение пары токенов
// @Description Обмен кода подтверждения на access и refresh токены
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Имя пользователя и код подтверждения"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/token [post]
func (h *Handler) ObtainToken(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	user, err := h.Repository.GetUserByUsername(req.Username)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, err)
		return
	}

	if !h.Tokens.Verify(&user, req.ConfirmationCode) {
		h.fieldErrorHandler(ctx, http.StatusBadRequest, "confirmation_code",
			"неверный код подтверждения")
		return
	}

	access, err := h.createToken(&user, ds.TokenTypeAccess, h.Config.JWT.AccessTTL)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	refresh, err := h.createToken(&user, ds.TokenTypeRefresh, h.Config.JWT.RefreshTTL)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{
		Access:  access,
		Refresh: refresh,
	})
}

func (h *Handler) createToken(user *ds.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "api_yamdb",
		},
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
		// Флаг суперпользователя складывается в is_staff:
		// для проверок прав они равнозначны
		IsStaff:   user.IsStaff || user.IsSuperuser,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Config.JWT.Secret))
}

// RefreshToken godoc
// @Summary Обновление access токена
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /auth/token/refresh [post]
func (h *Handler) RefreshToken(ctx *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	claims, err := h.parseToken(req.Refresh)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	if claims.TokenType != ds.TokenTypeRefresh {
		h.errorHandler(ctx, http.StatusUnauthorized, fmt.Errorf("invalid token type"))
		return
	}

	user, err := h.Repository.GetUserByID(claims.UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	access, err := h.createToken(&user, ds.TokenTypeAccess, h.Config.JWT.AccessTTL)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"access": access})
}

// VerifyToken godoc
// @Summary Проверка токена
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/token/verify [post]
func (h *Handler) VerifyToken(ctx *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.bindingErrorHandler(ctx, err)
		return
	}

	if _, err := h.parseToken(req.Token); err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: "токен действителен"})
}

// Logout godoc
// @Summary Выход из системы
// @Description Добавляет предъявленный access токен в blacklist
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(ctx *gin.Context) {
	jwtStr := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(jwtStr, jwtPrefix) {
		h.errorHandler(ctx, http.StatusBadRequest, fmt.Errorf("authorization header required"))
		return
	}

	jwtStr = jwtStr[len(jwtPrefix):]

	claims, err := h.parseToken(jwtStr)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	// Токен попадает в blacklist на оставшееся время жизни
	expiresAt := time.Unix(claims.ExpiresAt, 0)
	ttl := time.Until(expiresAt)

	if ttl > 0 {
		err = h.Repository.AddTokenToBlacklist(ctx.Request.Context(), jwtStr, ttl)
		if err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, fmt.Errorf("failed to logout"))
			return
		}
	}

	ctx.JSON(http.StatusOK, MessageResponse{Message: "выход выполнен"})
}
