package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"api_yamdb/internal/app/ds"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestRepository поднимает репозиторий на sqlite в памяти.
// Каждый тест получает свою базу, Minio и Redis не подключаются.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	name := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	rep, err := NewWithDB(db, nil)
	require.NoError(t, err)
	return rep
}

func createTestUser(t *testing.T, rep *Repository, username string) ds.User {
	t.Helper()

	user := &ds.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     ds.RoleUser,
	}
	require.NoError(t, rep.CreateUser(user))
	return *user
}

func createTestTitle(t *testing.T, rep *Repository, name string) ds.Title {
	t.Helper()

	title := &ds.Title{Name: name, Year: 1994}
	require.NoError(t, rep.CreateTitle(title))
	return *title
}
