// Пакет token реализует выдачу и проверку кодов подтверждения.
package token

import "api_yamdb/internal/app/ds"

// Generator — стратегия кодов подтверждения.
// Issue выдает код для пользователя, Verify проверяет предъявленный код.
type Generator interface {
	Issue(user *ds.User) (string, error)
	Verify(user *ds.User, code string) bool
}
