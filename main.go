package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/umalmyha/custdb/internal/config"
	"github.com/umalmyha/custdb/internal/infra"
	"github.com/umalmyha/custdb/internal/repository"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultConnectTimeout  = 5 * time.Second
)

// @title       Customer API
// @version     1.0
// @description CRUD REST API for customer records backed by a document database

// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name x-api-key
func main() {
	logger := logrus.New()

	cfg, err := config.Build()
	if err != nil {
		logger.Fatal(err)
	}

	// command line key takes precedence over environment
	apiKeyFlag := flag.String("api-key", "", "static API key guarding the customer routes")
	flag.Parse()
	if *apiKeyFlag != "" {
		cfg.ServerCfg.APIKey = *apiKeyFlag
	}

	if cfg.ServerCfg.APIKey == "" {
		logger.Fatal("apiKey has no value. Please provide a value through the API_KEY env var or --api-key cmd line parameter.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	mongoClient, err := infra.Mongodb(ctx, cfg.MongoCfg)
	if err != nil {
		logger.Fatalf("failed to connect to mongodb - %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Errorf("failed to disconnect from mongodb - %v", err)
		}
	}()
	logger.Infof("connected to mongodb database %s", cfg.MongoCfg.Database)

	redisClient, err := infra.Redis(ctx, cfg.RedisCfg)
	if err != nil {
		logger.Fatalf("failed to connect to redis - %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Errorf("failed to close redis connection - %v", err)
		}
	}()

	// the customer id counter must exist before the first create
	if err := repository.NewMongoSequenceRepository(mongoClient, cfg.MongoCfg.Database).Init(ctx); err != nil {
		logger.Fatalf("failed to initialize customer id counter - %v", err)
	}

	app, err := infra.Router(mongoClient, redisClient, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to build router - %v", err)
	}

	start(app, cfg.ServerCfg.Port, logger)
}

func start(app *echo.Echo, port int, logger *logrus.Logger) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		logger.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logger.Fatalf("failed to stop server gracefully - %v", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("shutting down the server, unexpected error occurred - %v", err)
		}
	}
}
