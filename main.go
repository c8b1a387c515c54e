package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"appointments-server/internal/booking"
	"appointments-server/internal/cache"
	"appointments-server/internal/config"
	"appointments-server/internal/logger"
	"appointments-server/internal/middleware"
	"appointments-server/internal/models"
	"appointments-server/internal/notify"
	"appointments-server/internal/routes"
	"appointments-server/internal/storage"
	"appointments-server/internal/store"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	mongoOpTimeout  = 5 * time.Second
)

func main() {
	// Load environment variables; the process environment wins when no .env exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zl, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{
		DSN:   cfg.Database.DSN,
		Debug: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	mongoClient, err := notify.Connect(startCtx, cfg.Mongo.URL)
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	mongoDB := mongoClient.Database(cfg.Mongo.Database)
	if err := notify.EnsureIndexes(startCtx, mongoDB); err != nil {
		return err
	}
	notifications := notify.NewMongoStore(mongoDB, mongoOpTimeout)

	var providerCache cache.Cache = cache.NewMemory()
	if cfg.Redis.Addr != "" {
		redisCache, client, err := cache.NewRedis(startCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		providerCache = redisCache
		zl.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var publisher booking.EventPublisher = notify.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := notify.NewKafkaPublisher(notify.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, zl), zl)
		defer func() {
			if err := kp.Close(); err != nil {
				zl.Warn("failed to close kafka writer", zap.Error(err))
			}
		}()
		publisher = kp
		zl.Info("kafka publishing enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	disk, err := storage.NewDisk(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return err
	}

	users := store.NewUserRepository(db)
	bookings := booking.NewService(users, store.NewAppointmentRepository(db), notifications, booking.Config{
		Location:  cfg.Location,
		Logger:    zl.Named("booking"),
		Publisher: publisher,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer limiter.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(zl.Named("http")), middleware.Metrics())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.MaxMultipartMemory = cfg.Upload.MaxBytes

	routes.SetupRoutes(router, routes.Dependencies{
		Cfg:           cfg,
		Log:           zl,
		Users:         users,
		Files:         store.NewFileRepository(db),
		Notifications: notifications,
		Cache:         providerCache,
		Disk:          disk,
		Bookings:      bookings,
		Limiter:       limiter,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
