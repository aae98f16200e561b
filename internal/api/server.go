// @title Onboarding Service API
// @version 1.0
// @description Employee onboarding intake, employee listing and document download endpoints.
// @BasePath /
package api

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/SundayYogurt/onboarding_service/config"
	"github.com/SundayYogurt/onboarding_service/infra/queue"
	"github.com/SundayYogurt/onboarding_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/onboarding_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"github.com/SundayYogurt/onboarding_service/internal/helper/utils"
	"github.com/SundayYogurt/onboarding_service/internal/intake"
	"github.com/SundayYogurt/onboarding_service/internal/interfaces"
	"github.com/SundayYogurt/onboarding_service/internal/repository"
	"github.com/SundayYogurt/onboarding_service/internal/services"
	"github.com/SundayYogurt/onboarding_service/pkg/cloudinary"
	"github.com/SundayYogurt/onboarding_service/pkg/localstore"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	serviceName     = "onboarding-service"
	shutdownTimeout = 10 * time.Second

	// one lock id for every replica running migrations
	migrateLockID int64 = 20250615
)

// StartServer runs the intake API until SIGINT or SIGTERM.
func StartServer(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.HandleError(c, err, cfg.ExposeInternalErrors)
		},
	})
	app.Use(recover.New())

	// ---------- Tracing ----------
	if cfg.OtelEnabled {
		tp, err := middleware.InitTracer(ctx, serviceName, cfg.OtelEndpoint, cfg.Env)
		if err != nil {
			return fmt.Errorf("tracer init: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(sctx); err != nil {
				log.Warn("tracer shutdown failed", "error", err)
			}
		}()
		app.Use(middleware.Tracing(serviceName))
		log.Info("tracing enabled", "endpoint", cfg.OtelEndpoint)
	}

	app.Use(middleware.RequestLogger(log))

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsAllowOrigins,
		AllowHeaders:     "Content-Type, Accept, Idempotency-Key, X-Request-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.CorsAllowOrigins != "*",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("database close failed", "error", err)
		}
	}()
	log.Info("database connected", "max_open_conns", cfg.MaxOpenConns)

	// ---------- MIGRATION (guarded by advisory lock) ----------
	if err := migrate(db); err != nil {
		return err
	}
	log.Info("migration successful")

	// ---------- Infra ----------
	store, err := newDocumentStore(cfg, app)
	if err != nil {
		return err
	}
	log.Info("document storage ready", "driver", cfg.StorageDriver)

	var producer interfaces.ProducerHandler
	if cfg.KafkaBroker != "" {
		p := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)
		defer func() {
			if err := p.Close(); err != nil {
				log.Warn("kafka producer close failed", "error", err)
			}
		}()
		producer = p
		log.Info("kafka producer ready", "broker", cfg.KafkaBroker, "topic", cfg.KafkaTopic)
	}

	var handlerOpts []handlers.EmployeeHandlerOption
	handlerOpts = append(handlerOpts, handlers.WithExposedErrors(cfg.ExposeInternalErrors))
	if cfg.RedisAddr != "" {
		cache := middleware.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, log)
		if err := cache.Ping(ctx); err != nil {
			log.Warn("redis unavailable, idempotency keys disabled", "addr", cfg.RedisAddr, "error", err)
			_ = cache.Close()
		} else {
			defer cache.Close()
			handlerOpts = append(handlerOpts, handlers.WithIdempotency(cache))
			log.Info("idempotency cache ready", "addr", cfg.RedisAddr)
		}
	}

	// ---------- Repositories ----------
	employeeRepo := repository.NewEmployeeRepository(db)

	// ---------- Service ----------
	validator := intake.NewValidator(intake.ParseProfile(cfg.RuleProfile), time.Now)
	employeeSvc := services.NewEmployeeService(employeeRepo, store, validator, producer, log, time.Now)

	// ---------- Handler ----------
	employeeHandler := handlers.NewEmployeeHandler(employeeSvc, log, handlerOpts...)
	employeeHandler.SetupRoutes(app)
	RegisterSwagger(app)

	// ---------- Pages ----------
	page := "form.html"
	if cfg.PageMode == "view" {
		page = "view.html"
	}
	pagePath := filepath.Join(cfg.PublicDir, page)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(pagePath)
	})
	app.Static("/", cfg.PublicDir)

	// ---------- Listen ----------
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.ServerPort, "page", page, "rule_profile", cfg.RuleProfile)
		errCh <- app.Listen(cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Warn("http shutdown failed", "error", err)
	}
	return nil
}

func migrate(db *gorm.DB) error {
	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		return fmt.Errorf("migration lock error: %w", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(&domain.Employee{}); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// newDocumentStore selects the storage backend. Local storage is also served
// inline under /Uploads.
func newDocumentStore(cfg config.Config, app *fiber.App) (interfaces.DocumentStore, error) {
	switch cfg.StorageDriver {
	case "cloudinary":
		cld, err := cloudinary.New(cfg.CloudinaryUrl)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init error: %w", err)
		}
		return cloudinary.NewStore(cld, cfg.CloudinaryFolder), nil
	case "local", "":
		store, err := localstore.New(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("upload dir: %w", err)
		}
		app.Static(localstore.PublicPrefix, store.Dir())
		return store, nil
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}
