package routes

import (
	"jobboard_front/internal/handlers"
	"jobboard_front/internal/logger"
	"jobboard_front/internal/middleware"
	"jobboard_front/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует страницы, служебные и WebSocket маршруты.
// jwtSecret проверяет токен там, где личность пользователя берется не из API.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	jwtSecret string,
) {
	pages := ginRouter.Group("")
	{
		appHandlers.MessageHandler.RegisterRoutes(pages)
		appHandlers.JobHandler.RegisterRoutes(pages)
		appHandlers.ProfileHandler.RegisterRoutes(pages)
	}

	if appHandlers.JournalHandler != nil {
		operators := ginRouter.Group("")
		operators.Use(middleware.RequireVerifiedUser(jwtSecret), middleware.RequireRoles(middleware.RoleAdmin))
		appHandlers.JournalHandler.RegisterRoutes(operators)
	}

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.RequireVerifiedUser(jwtSecret))
	{
		wsGroup.GET("", wsHandler.ServeWS)
		wsGroup.GET("/status", wsHandler.Status)
	}
	if jwtSecret == "" {
		logger.Warn("JWT secret is not set: /ws and operator routes will reject every request")
	}
	logger.Info("WebSocket route /ws registered")
}
