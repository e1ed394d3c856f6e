package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"api_yamdb/internal/app/config"
	"api_yamdb/internal/app/ds"
	"api_yamdb/internal/app/redis"
	"api_yamdb/internal/app/repository"
	"api_yamdb/internal/app/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// recordingSender копит отправленные письма вместо реальной доставки
type recordingSender struct {
	messages []sentMessage
}

type sentMessage struct {
	Subject string
	Body    string
	To      string
}

func (s *recordingSender) Send(subject, body, to string) error {
	s.messages = append(s.messages, sentMessage{Subject: subject, Body: body, To: to})
	return nil
}

// newTestEnv поднимает обработчик на sqlite и miniredis
func newTestEnv(t *testing.T) (*Handler, *gin.Engine, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisClient, err := redis.New(mr.Host(), mr.Port())
	require.NoError(t, err)

	rep, err := repository.NewWithDB(db, redisClient)
	require.NoError(t, err)

	conf := &config.Config{}
	conf.JWT.Secret = "test_secret"
	conf.JWT.AccessTTL = time.Hour
	conf.JWT.RefreshTTL = 24 * time.Hour
	conf.Code.TTL = time.Hour

	sender := &recordingSender{}
	codes := token.NewHMACGenerator([]byte(conf.JWT.Secret), conf.Code.TTL)

	h := NewHandler(rep, conf, codes, sender)

	router := gin.New()
	h.RegisterHandler(router)

	return h, router, sender
}

func createUser(t *testing.T, h *Handler, username string, role ds.Role) ds.User {
	t.Helper()

	user := &ds.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, h.Repository.CreateUser(user))
	return *user
}

func accessToken(t *testing.T, h *Handler, user *ds.User) string {
	t.Helper()

	tokenStr, err := h.createToken(user, ds.TokenTypeAccess, h.Config.JWT.AccessTTL)
	require.NoError(t, err)
	return tokenStr
}

func doRequest(t *testing.T, router *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createTitleForTest(t *testing.T, h *Handler, name string) ds.Title {
	t.Helper()

	title := &ds.Title{Name: name, Year: 2008}
	require.NoError(t, h.Repository.CreateTitle(title))
	return *title
}

func createReviewForTest(t *testing.T, h *Handler, titleID, authorID int) ds.Review {
	t.Helper()

	review := &ds.Review{TitleID: titleID, AuthorID: authorID, Text: "отзыв", Score: 7}
	require.NoError(t, h.Repository.CreateReview(review))
	return *review
}
