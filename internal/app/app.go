package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zennexify/internal/config"
	"zennexify/internal/handlers"
	"zennexify/internal/metrics"
	"zennexify/internal/middleware"
	"zennexify/internal/services"
	"zennexify/pkg/logger"
	"zennexify/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// APIPrefix is where the owner API is mounted.
const APIPrefix = "/api/v1/owner"

const metricsPath = "/metrics"

// App owns the HTTP server and every resource it depends on.
type App struct {
	cfg     config.Config
	log     *logger.Logger
	fiber   *fiber.App
	metrics *metrics.Metrics
	storage *storage
	mq      *rabbitmq.Client
}

// New opens storage and the optional broker, wires services and handlers
// and builds the HTTP server. Nothing listens until Listen is called.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a := &App{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
		storage: store,
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			// Events are best effort; the API works without a broker.
			log.WithOp("app.New").WithError(err).Warn("RabbitMQ unavailable, domain events disabled")
		} else {
			a.mq = mq
			events = a.metrics.CountEvents(mq)
		}
	}

	tokens := services.NewTokenService(cfg.JWTSecret, services.DefaultTokenTTL)
	authService := services.NewAuthService(store.users, tokens, events, log)
	storeService := services.NewStoreService(store.users, store.stores, events, log)
	productService := services.NewProductService(store.stores, store.products, events, log)

	respond := handlers.NewResponder(log, cfg.ExposeInternalErrors)
	a.fiber = fiber.New(fiber.Config{
		AppName:               "zennexify",
		ErrorHandler:          respond.FiberErrorHandler,
		DisableStartupMessage: true,
	})

	a.fiber.Use(recover.New())
	a.fiber.Use(requestid.New())
	a.fiber.Use(fiberlogger.New(fiberlogger.Config{
		Output: log.Out,
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	a.fiber.Use(helmet.New())
	a.fiber.Use(cors.New())
	a.fiber.Use(middleware.Metrics(a.metrics, metricsPath))

	a.fiber.Get("/health", a.handleHealth)
	a.fiber.Get(metricsPath, adaptor.HTTPHandler(a.metrics.Handler()))

	auth := middleware.AuthRequired(tokens, log)
	owner := a.fiber.Group(APIPrefix)
	handlers.NewAuthHandler(authService, respond, cfg.CookieSecure).RegisterRoutes(owner, auth)
	handlers.NewStoreHandler(storeService, respond).RegisterRoutes(owner, auth)
	handlers.NewProductHandler(productService, respond).RegisterRoutes(owner, auth)

	log.WithOp("app.New").WithField("driver", cfg.DBDriver).Info("application initialised")
	return a, nil
}

// Fiber exposes the HTTP server, mainly for app.Test in tests.
func (a *App) Fiber() *fiber.App {
	return a.fiber
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	a.log.WithOp("app.Listen").WithField("addr", a.cfg.AppPort).Info("starting server")
	return a.fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the server and releases the broker and storage.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop server: %w", err))
	}
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.storage.close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	now := time.Now().Format(time.RFC3339)
	if err := a.storage.ping(ctx); err != nil {
		a.log.WithOp("handleHealth").WithError(err).Warn("storage ping failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"time":   now,
		})
	}

	body := fiber.Map{
		"status":  "healthy",
		"time":    now,
		"storage": a.cfg.DBDriver,
	}
	if a.mq != nil {
		body["rabbitmq"] = "connected"
	}
	return c.JSON(body)
}
