package token

import (
	"testing"
	"time"

	"api_yamdb/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *ds.User {
	return &ds.User{
		UserID:   7,
		Username: "capitan",
		Email:    "capitan@example.com",
	}
}

func TestHMACGeneratorRoundTrip(t *testing.T) {
	g := NewHMACGenerator([]byte("secret"), time.Hour)
	user := testUser()

	code, err := g.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	assert.True(t, g.Verify(user, code))
	// Код не одноразовый: повторная проверка проходит
	assert.True(t, g.Verify(user, code))
}

func TestHMACGeneratorBoundToUser(t *testing.T) {
	g := NewHMACGenerator([]byte("secret"), time.Hour)
	user := testUser()

	code, err := g.Issue(user)
	require.NoError(t, err)

	other := testUser()
	other.Username = "boatswain"
	assert.False(t, g.Verify(other, code))

	// Смена почты тоже инвалидирует код
	changed := testUser()
	changed.Email = "new@example.com"
	assert.False(t, g.Verify(changed, code))
}

func TestHMACGeneratorExpiry(t *testing.T) {
	g := NewHMACGenerator([]byte("secret"), time.Hour)
	user := testUser()

	code, err := g.Issue(user)
	require.NoError(t, err)

	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.False(t, g.Verify(user, code))

	// Код "из будущего" тоже не принимается
	g.now = func() time.Time { return time.Now().Add(-time.Minute) }
	assert.False(t, g.Verify(user, code))
}

func TestHMACGeneratorRejectsGarbage(t *testing.T) {
	g := NewHMACGenerator([]byte("secret"), time.Hour)
	user := testUser()

	code, err := g.Issue(user)
	require.NoError(t, err)

	assert.False(t, g.Verify(user, ""))
	assert.False(t, g.Verify(user, "no-dash-here"))
	assert.False(t, g.Verify(user, code+"x"))
	assert.False(t, g.Verify(user, "zzz-"+code))
}

func TestHMACGeneratorSecretMatters(t *testing.T) {
	user := testUser()

	code, err := NewHMACGenerator([]byte("secret"), time.Hour).Issue(user)
	require.NoError(t, err)

	other := NewHMACGenerator([]byte("another"), time.Hour)
	assert.False(t, other.Verify(user, code))
}

// fakeCodeStore хранит коды в памяти вместо базы
type fakeCodeStore struct {
	codes map[int]string
}

func (s *fakeCodeStore) UpdateUserConfirmationCode(userID int, code string) error {
	if s.codes == nil {
		s.codes = make(map[int]string)
	}
	s.codes[userID] = code
	return nil
}

func TestStoredCodeGeneratorIssue(t *testing.T) {
	store := &fakeCodeStore{}
	g := NewStoredCodeGenerator(store)
	user := testUser()

	code, err := g.Issue(user)
	require.NoError(t, err)

	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
	assert.Equal(t, code, store.codes[user.UserID])
	assert.Equal(t, code, user.ConfirmationCode)
}

func TestStoredCodeGeneratorSingleUse(t *testing.T) {
	store := &fakeCodeStore{}
	g := NewStoredCodeGenerator(store)
	user := testUser()

	code, err := g.Issue(user)
	require.NoError(t, err)

	assert.False(t, g.Verify(user, "000000"))

	assert.True(t, g.Verify(user, code))

	// Код стерт: второй обмен не проходит
	assert.Empty(t, store.codes[user.UserID])
	assert.False(t, g.Verify(user, code))
}

func TestStoredCodeGeneratorEmptyCode(t *testing.T) {
	g := NewStoredCodeGenerator(&fakeCodeStore{})
	user := testUser()

	// Пользователь без выданного кода не подтверждается пустой строкой
	assert.False(t, g.Verify(user, ""))
}
