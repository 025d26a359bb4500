package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "opaque-token"})
	req.AddCookie(&http.Cookie{Name: UserIDCookie, Value: "7"})

	s := FromRequest(req)
	assert.Equal(t, "opaque-token", s.Token)
	assert.Equal(t, int64(7), s.UserID)
	assert.True(t, s.Authenticated())
	assert.True(t, s.IsUser(7))
	assert.False(t, s.IsUser(8))
}

func TestFromRequestMalformedUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: UserIDCookie, Value: "abc"})

	s := FromRequest(req)
	assert.False(t, s.HasUser())
	assert.False(t, s.Authenticated())
	assert.Equal(t, "", s.UserIDString())
}

func TestExpiredJWT(t *testing.T) {
	now := time.Now()

	assert.True(t, Expired(signed(t, now.Add(-time.Minute)), now))
	assert.False(t, Expired(signed(t, now.Add(time.Hour)), now))
	assert.False(t, Expired("not-a-jwt", now))

	s := Session{Token: signed(t, now.Add(-time.Minute)), UserID: 7}
	assert.False(t, s.AuthenticatedAt(now))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	var got Session
	r.GET("/", func(c *gin.Context) {
		got = FromContext(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: UserIDCookie, Value: "3"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, Session{Token: "tok", UserID: 3}, got)
}
