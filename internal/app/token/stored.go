package token

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"api_yamdb/internal/app/ds"
)

const storedCodeLength = 6

// CodeStore — хранилище кода подтверждения на записи пользователя
type CodeStore interface {
	UpdateUserConfirmationCode(userID int, code string) error
}

// StoredCodeGenerator — генератор случайного цифрового кода,
// который сохраняется на записи пользователя.
// Код одноразовый: после успешной проверки он стирается.
type StoredCodeGenerator struct {
	store CodeStore
}

func NewStoredCodeGenerator(store CodeStore) *StoredCodeGenerator {
	return &StoredCodeGenerator{store: store}
}

func (g *StoredCodeGenerator) Issue(user *ds.User) (string, error) {
	code := ""
	for i := 0; i < storedCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		code += n.String()
	}

	if err := g.store.UpdateUserConfirmationCode(user.UserID, code); err != nil {
		return "", err
	}
	user.ConfirmationCode = code
	return code, nil
}

func (g *StoredCodeGenerator) Verify(user *ds.User, code string) bool {
	if user.ConfirmationCode == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user.ConfirmationCode), []byte(code)) != 1 {
		return false
	}

	// Стираем использованный код
	if err := g.store.UpdateUserConfirmationCode(user.UserID, ""); err != nil {
		return false
	}
	user.ConfirmationCode = ""
	return true
}
