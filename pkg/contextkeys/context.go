package contextkeys

// Ключи gin.Context, которые выставляют middleware
const (
	// SessionKey хранит session.Session текущего запроса
	SessionKey = "session"

	// RoleKey хранит роль из проверенного токена
	RoleKey = "role"

	// NotificationsKey хранит *notify.Collector текущего запроса
	NotificationsKey = "notifications"
)
