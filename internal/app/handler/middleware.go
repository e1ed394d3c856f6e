package handler

import (
	"fmt"
	"net/http"
	"strings"

	"api_yamdb/internal/app/authz"
	"api_yamdb/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const jwtPrefix = "Bearer "

// AuthMiddleware разбирает JWT с проверкой blacklist и кладет актора
// в контекст. Анонимные запросы пропускаются дальше: пускать или нет,
// решают проверки прав на маршруте.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Пропускаем OPTIONS запросы
		if ctx.Request.Method == "OPTIONS" {
			ctx.Next()
			return
		}

		jwtStr := ctx.GetHeader("Authorization")
		if jwtStr == "" {
			ctx.Set("actor", authz.Actor{})
			ctx.Next()
			return
		}

		if !strings.HasPrefix(jwtStr, jwtPrefix) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authorization header must use Bearer scheme",
			})
			return
		}

		jwtStr = jwtStr[len(jwtPrefix):]

		// Проверяем blacklist
		isBlacklisted, err := h.Repository.IsTokenInBlacklist(ctx.Request.Context(), jwtStr)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
			})
			return
		}
		if isBlacklisted {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Token is invalidated",
			})
			return
		}

		claims, err := h.parseToken(jwtStr)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Invalid token",
			})
			return
		}

		if claims.TokenType != ds.TokenTypeAccess {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Invalid token type",
			})
			return
		}

		ctx.Set("actor", authz.Actor{
			UserID:        claims.UserID,
			Username:      claims.Username,
			Role:          claims.Role,
			IsStaff:       claims.IsStaff,
			Authenticated: true,
		})

		ctx.Next()
	}
}

// parseToken разбирает и проверяет подпись JWT
func (h *Handler) parseToken(jwtStr string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(jwtStr, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// AuthRequired запрещает анонимный доступ
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !authz.IsAuthenticated(h.actor(ctx)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authorization header required",
			})
			return
		}
		ctx.Next()
	}
}

// AdminOnly пропускает только администратора, чтение не исключение
func (h *Handler) AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		a := h.actor(ctx)
		if !a.Authenticated {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authorization header required",
			})
			return
		}
		if !authz.AdminOnly(a) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error: "Admin access required",
			})
			return
		}
		ctx.Next()
	}
}

// AdminOrReadOnly пропускает чтение для всех, запись — администратору
func (h *Handler) AdminOrReadOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		a := h.actor(ctx)
		if authz.AdminOrReadOnly(a, ctx.Request.Method) {
			ctx.Next()
			return
		}
		if !a.Authenticated {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authorization header required",
			})
			return
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error: "Admin access required",
		})
	}
}

// AuthenticatedOrReadOnly пропускает чтение для всех,
// запись — любому аутентифицированному пользователю
func (h *Handler) AuthenticatedOrReadOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		a := h.actor(ctx)
		if authz.SafeMethod(ctx.Request.Method) || authz.IsAuthenticated(a) {
			ctx.Next()
			return
		}
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Authorization header required",
		})
	}
}
