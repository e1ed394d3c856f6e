package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"api_yamdb/internal/app/ds"
)

const hmacSigLength = 20

// HMACGenerator — криптографический генератор без хранения кода.
// Код состоит из метки времени и усеченной HMAC-подписи,
// привязанной к идентификатору, имени и почте пользователя.
// Код действует ttl и НЕ является одноразовым.
type HMACGenerator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewHMACGenerator(secret []byte, ttl time.Duration) *HMACGenerator {
	return &HMACGenerator{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (g *HMACGenerator) Issue(user *ds.User) (string, error) {
	ts := g.now().Unix()
	return fmt.Sprintf("%s-%s", strconv.FormatInt(ts, 36), g.sign(user, ts)), nil
}

func (g *HMACGenerator) Verify(user *ds.User, code string) bool {
	tsPart, sigPart, found := strings.Cut(code, "-")
	if !found {
		return false
	}

	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}

	age := g.now().Unix() - ts
	if age < 0 || age > int64(g.ttl.Seconds()) {
		return false
	}

	expected := g.sign(user, ts)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(sigPart)) == 1
}

func (g *HMACGenerator) sign(user *ds.User, ts int64) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%d:%s:%s:%d", user.UserID, user.Username, user.Email, ts)
	return hex.EncodeToString(mac.Sum(nil))[:hmacSigLength]
}
