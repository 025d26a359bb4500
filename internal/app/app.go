package app

import (
	"jobboard_front/database"
	"jobboard_front/internal/apiclient"
	"jobboard_front/internal/config"
	"jobboard_front/internal/forms"
	"jobboard_front/internal/handlers"
	"jobboard_front/internal/imageprocessor"
	"jobboard_front/internal/logger"
	"jobboard_front/internal/middleware"
	"jobboard_front/internal/notify"
	"jobboard_front/internal/repositories"
	"jobboard_front/internal/routes"
	"jobboard_front/internal/services"
	"jobboard_front/internal/session"
	"jobboard_front/internal/validator"
	"jobboard_front/web"
	"jobboard_front/ws"

	"github.com/gin-gonic/gin"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env, "api_url", cfg.API.URL)

	var journal *services.JournalService
	if cfg.Database.DSN != "" {
		logger.Info("Connecting to submission journal database...")
		db, err := database.Connect(cfg.Database.DSN)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		journal = services.NewJournalService(repositories.NewSubmissionRepository(db))
		logger.Info("Submission journal enabled")
	} else {
		logger.Warn("DATABASE_URL is not set, submission journal disabled")
	}

	wsManager := ws.NewWebSocketManager()
	go wsManager.Run()

	ginRouter := SetupRouter(cfg, journal, wsManager)

	address := cfg.Addr()
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires the handlers; journal may be nil.
func SetupRouter(cfg *config.Config, journal *services.JournalService, wsManager *ws.WebSocketManager) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appHandlers := initializeHandlers(cfg, journal, wsManager)
	wsHandler := ws.NewWebSocketHandler(wsManager)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, cfg.JWT.Secret)
	return ginRouter
}

func initializeHandlers(cfg *config.Config, journal *services.JournalService, wsManager *ws.WebSocketManager) *handlers.AppHandlers {
	customValidator := validator.New()

	deps := forms.Deps{
		API:       apiclient.New(cfg.API.URL, cfg.APITimeout()),
		Validator: customValidator,
		Images:    imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.MaxWidth, cfg.Upload.MaxSize),
	}
	if journal != nil {
		deps.Observer = journal
	}

	live := notify.Fanout{}
	if wsManager != nil {
		live = append(live, wsManager)
	}
	baseHandler := handlers.NewBaseHandler(customValidator, deps, live)

	appHandlers := &handlers.AppHandlers{
		MessageHandler: handlers.NewMessageHandler(baseHandler),
		JobHandler:     handlers.NewJobHandler(baseHandler, cfg.Jobs.IndexPath, cfg.Upload.MaxSize),
		ProfileHandler: handlers.NewProfileHandler(baseHandler, cfg.Profile.DefaultImageURL),
	}
	if journal != nil {
		appHandlers.JournalHandler = handlers.NewJournalHandler(baseHandler, journal)
	}
	return appHandlers
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(session.Middleware())
	router.Use(notify.Middleware())
	web.LoadTemplates(router)
	return router
}
