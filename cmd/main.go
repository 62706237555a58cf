package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/config"
	"github.com/oksasatya/complaint-desk/internal/container"
	"github.com/oksasatya/complaint-desk/internal/infrastructure/elastic"
	"github.com/oksasatya/complaint-desk/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/complaint-desk/internal/infrastructure/postgres"
	"github.com/oksasatya/complaint-desk/internal/infrastructure/redisstore"
	"github.com/oksasatya/complaint-desk/internal/router"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	c := &container.Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
	}
	if cfg.AdminEmail == "" {
		logger.Warn("ADMIN_EMAIL is empty; no account will have admin access")
	}

	// Stores
	switch cfg.StorageBackend {
	case "memory":
		store := memory.NewStore()
		c.Users, c.Complaints, c.Reports = store.Users(), store.Complaints(), store.Complaints()
		logger.Warn("using in-memory storage; data is lost on restart")
	default:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		// Run migrations using database/sql with pgx stdlib
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		complaints := pginfra.NewComplaintRepository(pool)
		c.Users, c.Complaints, c.Reports = pginfra.NewUserRepository(pool), complaints, complaints
	}

	// Redis token denylist
	if cfg.RevocationEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		c.Revocations = redisstore.NewRevocationStore(rdb)
	}

	// Elasticsearch complaint index
	if len(cfg.ESAddrs()) > 0 {
		es, err := elastic.NewClient(cfg)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		idx := elastic.NewComplaintIndex(es, cfg.ESComplaintsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			logger.WithError(err).WithField("index", cfg.ESComplaintsIndex).Warn("complaint index bootstrap failed")
		}
		c.Index = idx
	}

	// RabbitMQ notifications
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; notifications disabled")
		} else {
			defer pub.Close()
			c.Publisher = pub
		}
	}

	// GCS report export
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		c.Uploader = helpers.NewGCSUploader(gcsClient, cfg.GCSBucket)
	}

	r := router.NewEngine(c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "storage": cfg.StorageBackend}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
