// Package apitest provides a fake job-board API and request helpers for tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Call is one request received by the fake API.
type Call struct {
	Method      string
	Path        string
	Auth        string
	ContentType string
	Body        []byte
	Form        map[string]string
	Files       map[string][]byte
}

// JSON decodes the recorded body into v.
func (c Call) JSON(t *testing.T, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(c.Body, v); err != nil {
		t.Fatalf("Ошибка декодирования тела запроса %s %s: %v", c.Method, c.Path, err)
	}
}

type reply struct {
	status int
	body   interface{}
}

// Server is an httptest server that answers configured routes and records every call.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]reply
	calls  []Call
}

// NewServer starts the fake API; it is closed on test cleanup.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{routes: make(map[string]reply)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle sets the answer for method and path. body is encoded as JSON unless nil.
func (s *Server) Handle(method, path string, status int, body interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = reply{status: status, body: body}
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *Server) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *Server) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	call := Call{
		Method:      r.Method,
		Path:        r.URL.Path,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
	}

	body, _ := io.ReadAll(r.Body)
	call.Body = body
	call.Form, call.Files = parseMultipart(call.ContentType, body)

	s.mu.Lock()
	s.calls = append(s.calls, call)
	rep, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		rep = reply{status: http.StatusNotFound, body: map[string]string{"message": "not found"}}
	}

	if rep.body == nil {
		w.WriteHeader(rep.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_ = json.NewEncoder(w).Encode(rep.body)
}

func parseMultipart(contentType string, body []byte) (map[string]string, map[string][]byte) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, nil
	}

	form := make(map[string]string)
	files := make(map[string][]byte)
	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		data, _ := io.ReadAll(part)
		if part.FileName() != "" {
			files[part.FormName()] = data
		} else {
			form[part.FormName()] = string(data)
		}
	}
	return form, files
}

// SendForm posts url-encoded values to h with the given cookies and returns the recorder.
func SendForm(t *testing.T, h http.Handler, method, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// SessionCookies returns the cookies the main site stores for a logged in user.
func SessionCookies(token, userID string) []*http.Cookie {
	var cookies []*http.Cookie
	if token != "" {
		cookies = append(cookies, &http.Cookie{Name: "authToken", Value: token})
	}
	if userID != "" {
		cookies = append(cookies, &http.Cookie{Name: "userId", Value: userID})
	}
	return cookies
}

// SignToken issues an HS256 access token for userID the way the main site does.
func SignToken(t *testing.T, secret string, userID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Ошибка подписи токена: %v", err)
	}
	return signed
}
