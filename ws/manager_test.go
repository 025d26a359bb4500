package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"jobboard_front/internal/apitest"
	"jobboard_front/internal/middleware"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "my_super_secret_key_for_tests_12345"

func newWSServer(t *testing.T) (*WebSocketManager, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := NewWebSocketManager()
	go manager.Run()
	t.Cleanup(manager.Stop)

	r := gin.New()
	r.Use(session.Middleware())
	r.GET("/ws", middleware.RequireVerifiedUser(testSecret), NewWebSocketHandler(manager).ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return manager, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func cookieHeader(token, userID string) http.Header {
	header := http.Header{}
	header.Add("Cookie", "authToken="+token+"; userId="+userID)
	return header
}

func dial(t *testing.T, srv *httptest.Server, userID int64) *websocket.Conn {
	t.Helper()
	token := apitest.SignToken(t, testSecret, userID, "user")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), cookieHeader(token, strconv.FormatInt(userID, 10)))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNotifyReachesEveryTabOfUser(t *testing.T) {
	manager, srv := newWSServer(t)

	tab1 := dial(t, srv, 5)
	tab2 := dial(t, srv, 5)
	other := dial(t, srv, 6)

	require.Eventually(t, func() bool {
		return manager.GetClientCount(5) == 2 && manager.GetClientCount(6) == 1
	}, time.Second, 10*time.Millisecond)

	manager.Notify(context.Background(), 5, notify.Success("Message sent"))

	for _, conn := range []*websocket.Conn{tab1, tab2} {
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		var got notify.Notification
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, notify.Success("Message sent"), got)
	}

	_ = other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var none notify.Notification
	assert.Error(t, other.ReadJSON(&none))
}

func TestClosedTabIsUnregistered(t *testing.T) {
	manager, srv := newWSServer(t)

	conn := dial(t, srv, 9)
	require.Eventually(t, func() bool { return manager.IsClientConnected(9) }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return !manager.IsClientConnected(9) }, time.Second, 10*time.Millisecond)
}

func TestServeWSRequiresSession(t *testing.T) {
	_, srv := newWSServer(t)

	_, res, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestServeWSRejectsCookieOnlyIdentity(t *testing.T) {
	manager, srv := newWSServer(t)

	tests := []struct {
		name   string
		header http.Header
		status int
	}{
		{"opaque token", cookieHeader("x", "5"), http.StatusUnauthorized},
		{"token of another user", cookieHeader(apitest.SignToken(t, testSecret, 6, "user"), "5"), http.StatusForbidden},
		{"token signed elsewhere", cookieHeader(apitest.SignToken(t, "other", 5, "user"), "5"), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res, err := websocket.DefaultDialer.Dial(wsURL(srv), tt.header)
			require.Error(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.status, res.StatusCode)
		})
	}

	assert.False(t, manager.IsClientConnected(5))
	assert.False(t, manager.IsClientConnected(6))
}
