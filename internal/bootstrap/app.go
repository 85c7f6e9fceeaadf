package bootstrap

import (
	"context"
	"time"

	"wordgame-service/config"
	gameHub "wordgame-service/internal/api/ws/hub"
	"wordgame-service/internal/game"
	"wordgame-service/internal/handler"
	"wordgame-service/internal/initializer"
	"wordgame-service/internal/server"
	"wordgame-service/pkg/graceful"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	config         config.Config
	postgresRepo   PostgresRepository
	sessionManager SessionManager
	closeStore     func() error
	publisher      initializer.Publisher
	manager        *game.Manager
	limiter        *handler.RateLimiter
	wsHub          *gameHub.Hub
	fiberApp       *fiber.App
	httpHandlers   map[string]interface{}
	wsHandlers     map[string]interface{}

	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(config config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	a.postgresRepo = InitDatabase(a.config)
	a.sessionManager = InitSessionRedis(a.config)

	var store game.RoomStore
	store, a.closeStore = initializer.InitRoomStore(a.config)
	a.publisher = initializer.InitMessaging(a.config)
	a.manager = initializer.InitGameManager(a.config, store, a.postgresRepo, a.publisher)
	a.limiter = initializer.InitRateLimiter(a.config)
	a.wsHub = initializer.InitWebsocket(a.ctx, a.manager, a.limiter)
	initializer.InitReaper(a.ctx, a.config, a.manager)

	a.httpHandlers = SetupHTTPHandlers(a.manager)
	a.wsHandlers = SetupWSHandlers(a.manager, a.wsHub)
	a.fiberApp = SetupServer(a.config, a.httpHandlers, a.wsHandlers, a.authMiddleware(), a.limiter)
}

func (a *App) authMiddleware() fiber.Handler {
	if a.sessionManager == nil {
		return handler.Authenticate(nil, a.config.Auth.TrustHeaders)
	}
	return handler.Authenticate(a.sessionManager, a.config.Auth.TrustHeaders)
}

func (a *App) Start() {
	go func() {
		if err := server.Start(a.fiberApp, a.config.Server.Host, a.config.Server.Port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	defer a.close()

	graceful.WaitForShutdown(a.fiberApp, 5*time.Second, context.Background())
}

// close stops background work first, then releases the connections it used.
func (a *App) close() {
	a.cancel()
	a.wsHub.Close()
	a.manager.Close()

	if err := a.publisher.Close(); err != nil {
		zap.L().Error("Failed to close publisher", zap.Error(err))
	}
	if err := a.closeStore(); err != nil {
		zap.L().Error("Failed to close room store", zap.Error(err))
	}
	if a.sessionManager != nil {
		if err := a.sessionManager.Close(); err != nil {
			zap.L().Error("Failed to close session redis", zap.Error(err))
		}
	}
	if err := a.postgresRepo.Close(); err != nil {
		zap.L().Error("Failed to close database", zap.Error(err))
	}
}
