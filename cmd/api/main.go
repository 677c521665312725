package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"studybuddy/docs"
	"studybuddy/internal/config"
	"studybuddy/internal/generation"
	handlers "studybuddy/internal/http/handler"
	"studybuddy/internal/http/middleware"
	"studybuddy/internal/llm"
	"studybuddy/internal/logger"
	"studybuddy/internal/otel"
	"studybuddy/internal/service"
)

const (
	serviceName = "studybuddy"
	version     = "1.0.0"
)

// @title Smart Study Buddy API
// @version 1.0.0
// @description Upload study material and get explanations, quizzes and study plans.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	// Fail fast instead of on the first request
	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, serviceName, version, zl)
	if err != nil {
		zl.Fatal("failed to initialize tracing", zap.Error(err))
	}

	model, err := llm.New(cfg.LLM)
	if err != nil {
		zl.Fatal("failed to initialize llm backend", zap.Error(err))
	}
	personas, err := generation.LoadPersonas(cfg.LLM.PersonasFile)
	if err != nil {
		zl.Fatal("failed to load personas", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	genMetrics, err := generation.NewMetrics(reg)
	if err != nil {
		zl.Fatal("failed to register generation metrics", zap.Error(err))
	}
	gen := generation.NewClient(model, generation.Options{
		Timeout:  cfg.LLM.Timeout,
		Reprompt: cfg.LLM.Reprompt,
		Metrics:  genMetrics,
		Logger:   zl.Named("generation"),
	})
	studySvc := service.NewStudyService(gen, personas, zl.Named("service"))

	app := fiber.New(fiber.Config{
		AppName:      "Smart Study Buddy API",
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.HTTP.UploadMaxBytes,
		// Generation can take up to the LLM timeout
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 15*time.Second,
	})

	// Register global middleware
	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	// Structured request logs
	app.Use(middleware.Logger(zl.Named("http")))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSAllowOrigins}))

	if cfg.HTTP.MetricsEnabled {
		promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			zl.Fatal("failed to register http metrics", zap.Error(err))
		}
		app.Use(promMiddleware.Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, studySvc, zl.Named("http"))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zl.Error("server shutdown failed", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			zl.Error("tracing shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.HTTP.Port
	zl.Info("starting server",
		zap.String("addr", addr),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
	)
	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}
