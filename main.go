package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/JohirU-coder/landlord-property-service/internal/config"
	"github.com/JohirU-coder/landlord-property-service/internal/handler"
	"github.com/JohirU-coder/landlord-property-service/internal/logger"
	appmongo "github.com/JohirU-coder/landlord-property-service/internal/mongo"
	"github.com/JohirU-coder/landlord-property-service/internal/repository"
	"github.com/JohirU-coder/landlord-property-service/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Log.Warnf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid configuration")
	}
	logger.Init(config.ServiceName, cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("db connect error")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnLifetime)
	defer db.Close()

	propertyRepo := repository.NewPropertyRepository(db)
	userRepo := repository.NewUserRepository(db)
	propertySvc := service.NewPropertyService(propertyRepo, userRepo)

	deps := handler.RouterDeps{
		Info: handler.ServiceInfo{
			Name:                   config.ServiceName,
			Version:                cfg.Version,
			Environment:            cfg.Env,
			DatabaseConfigured:     cfg.DatabaseURL != "",
			PhotoStorageConfigured: cfg.PhotoStorageEnabled(),
		},
		Properties:  propertySvc,
		CORSOrigins: cfg.CORSOrigins,
	}

	if cfg.PhotoStorageEnabled() {
		client, err := appmongo.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			logger.Log.WithError(err).Fatal("photo storage unavailable")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Log.WithError(err).Warn("mongo disconnect")
			}
		}()
		logger.Log.Infof("Connected to MongoDB, photos stored in %q", cfg.MongoDB)
		photoRepo := repository.NewPhotoRepository(client, cfg.MongoDB)
		deps.Photos = service.NewPhotoService(photoRepo, propertyRepo)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.NewRouter(deps),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Infof("Property service running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Error("server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("graceful shutdown failed")
	}
}
