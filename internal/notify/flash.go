package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"jobboard_front/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// FlashCookie carries notifications across a redirect.
const FlashCookie = "flash"

// Middleware puts a request Collector into the context, seeded with any flashed notifications.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		collector := NewCollector()
		for _, n := range readFlash(c) {
			collector.Notify(c.Request.Context(), 0, n)
		}
		c.Set(contextkeys.NotificationsKey, collector)
		c.Next()
	}
}

// FromContext returns the request Collector, creating one if Middleware did not run.
func FromContext(c *gin.Context) *Collector {
	if v, ok := c.Get(contextkeys.NotificationsKey); ok {
		if collector, ok := v.(*Collector); ok {
			return collector
		}
	}
	collector := NewCollector()
	c.Set(contextkeys.NotificationsKey, collector)
	return collector
}

// Flash moves the pending notifications of the request into the flash cookie.
func Flash(c *gin.Context) {
	items := FromContext(c).Drain()
	if len(items) == 0 {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, base64.RawURLEncoding.EncodeToString(data), 60, "/", "", false, true)
}

func readFlash(c *gin.Context) []Notification {
	raw, err := c.Cookie(FlashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(FlashCookie, "", -1, "/", "", false, true)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var items []Notification
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}
