package infra

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v9"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/umalmyha/custdb/docs" // swagger docs
	"github.com/umalmyha/custdb/internal/cache"
	"github.com/umalmyha/custdb/internal/config"
	"github.com/umalmyha/custdb/internal/handlers"
	"github.com/umalmyha/custdb/internal/middleware"
	"github.com/umalmyha/custdb/internal/repository"
	"github.com/umalmyha/custdb/internal/service"
	"github.com/umalmyha/custdb/internal/validation"
)

var errMissingTranslator = errors.New("failed to build echo validator because of missing en translations")

// Router wires repositories, services and handlers into the echo app.
func Router(mongoClient *mongo.Client, redisClient *redis.Client, cfg config.Config, logger *logrus.Logger) (*echo.Echo, error) {
	e := e()

	// validator for transport payloads
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	translator, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errMissingTranslator
	}
	e.Validator = validation.Echo(validator.New(), translator)

	// middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.LogRequests(logger))
	apiKeyMw := middleware.RequireAPIKey(cfg.ServerCfg.APIKey)

	// repositories
	customerRepo := repository.NewMongoCustomerRepository(mongoClient, cfg.MongoCfg.Database)
	sequenceRepo := repository.NewMongoSequenceRepository(mongoClient, cfg.MongoCfg.Database)
	customerCache := cache.NewRedisCustomerCacheRepository(redisClient)

	// services
	customerSvc := service.NewCustomerService(customerRepo, sequenceRepo, customerCache, logger)

	// handlers
	customerHandler := handlers.NewCustomerHTTPHandler(customerSvc, logger)

	// routes
	customersAPI := e.Group("/customers")
	customersAPI.GET("", customerHandler.GetAll, apiKeyMw)
	customersAPI.GET("/find", customerHandler.Find)
	customersAPI.GET("/city/:city", customerHandler.FindByCity, apiKeyMw)
	customersAPI.GET("/:id", customerHandler.Get, apiKeyMw)
	customersAPI.POST("", customerHandler.Post, apiKeyMw)
	customersAPI.PUT("/:id", customerHandler.Put, apiKeyMw)
	customersAPI.DELETE("/:id", customerHandler.DeleteByID, apiKeyMw)
	customersAPI.POST("/reset", customerHandler.ResetPost, apiKeyMw)
	customersAPI.POST("/seed", customerHandler.Seed, apiKeyMw)

	e.GET("/reset", customerHandler.Reset, apiKeyMw)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/", "public")

	return e, nil
}

func e() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}
