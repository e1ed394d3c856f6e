// Пакет authz содержит проверки прав доступа.
// Каждая проверка — чистый предикат над (актор, метод, владелец объекта);
// на одном маршруте проверки комбинируются только через логическое И.
package authz

import (
	"net/http"

	"api_yamdb/internal/app/ds"
)

// Actor — субъект запроса, восстановленный из JWT.
// Для анонимного запроса Authenticated == false, остальные поля нулевые.
type Actor struct {
	UserID        int
	Username      string
	Role          ds.Role
	IsStaff       bool
	Authenticated bool
}

func (a Actor) admin() bool {
	return a.Authenticated && (a.Role == ds.RoleAdmin || a.IsStaff)
}

func (a Actor) moderator() bool {
	return a.Authenticated && a.Role == ds.RoleModerator
}

// SafeMethod — методы чтения, которые разрешены всем
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAuthenticated — любой аутентифицированный пользователь
func IsAuthenticated(a Actor) bool {
	return a.Authenticated
}

// AdminOnly — только администратор, без исключения для чтения
func AdminOnly(a Actor) bool {
	return a.admin()
}

// AdminOrReadOnly — чтение разрешено всем,
// запись только администратору
func AdminOrReadOnly(a Actor, method string) bool {
	return SafeMethod(method) || a.admin()
}

// AdminModeratorAuthorOrReadOnly — чтение разрешено всем, запись —
// администратору, модератору либо автору объекта
func AdminModeratorAuthorOrReadOnly(a Actor, method string, ownerID int) bool {
	if SafeMethod(method) {
		return true
	}
	if !a.Authenticated {
		return false
	}
	return a.admin() || a.moderator() || a.UserID == ownerID
}
