// Package session reads the browser-persisted credentials of the current user.
//
// The token and user id are written by the login flow of the main site; this
// application only reads them.
package session

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenCookie  = "authToken"
	UserIDCookie = "userId"
)

// Session is the explicit credential handed to every form workflow.
type Session struct {
	Token  string
	UserID int64
}

// FromRequest builds a Session from the request cookies. Missing or malformed
// values leave the corresponding field zero.
func FromRequest(r *http.Request) Session {
	var s Session

	if c, err := r.Cookie(TokenCookie); err == nil {
		s.Token = strings.TrimSpace(c.Value)
	}
	if c, err := r.Cookie(UserIDCookie); err == nil {
		if id, err := strconv.ParseInt(strings.TrimSpace(c.Value), 10, 64); err == nil && id > 0 {
			s.UserID = id
		}
	}
	return s
}

// Authenticated reports whether a bearer token is available.
func (s Session) Authenticated() bool {
	return s.AuthenticatedAt(time.Now())
}

func (s Session) AuthenticatedAt(now time.Time) bool {
	return s.Token != "" && !Expired(s.Token, now)
}

// HasUser reports whether the current user id is known.
func (s Session) HasUser() bool {
	return s.UserID > 0
}

// IsUser reports whether the session belongs to the given user.
func (s Session) IsUser(id int64) bool {
	return s.HasUser() && s.UserID == id
}

func (s Session) UserIDString() string {
	if !s.HasUser() {
		return ""
	}
	return strconv.FormatInt(s.UserID, 10)
}

// Expired reports whether token is a JWT whose exp claim is in the past.
// The signature is not checked here, the API does that. Opaque tokens never expire.
func Expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
