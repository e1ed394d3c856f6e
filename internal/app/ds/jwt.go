package ds

import "github.com/golang-jwt/jwt"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type JWTClaims struct {
	jwt.StandardClaims
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"token_type"`
}
