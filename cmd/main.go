package main

import (
	"mall-service/internal/handler"
	mid "mall-service/internal/middleware"
	"mall-service/internal/model"
	"mall-service/pkg/config"
	"mall-service/pkg/database"
	"mall-service/pkg/jwtutil"
	"mall-service/pkg/logger"
	"mall-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; optional, real deployments set env vars directly
	_ = godotenv.Load()

	appConfig, err := config.Load("mall-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting mall-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	jwt := jwtutil.New(&appConfig.JWT)

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Bootstrap the schema once at startup
	err = database.MigrateModels(db,
		&model.Shop{},
		&model.Employee{},
		&model.Product{},
		&model.Footfall{},
		&model.Sale{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware)
	e.Use(mid.RequestTimeout(appConfig.Server.RequestTimeout))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.RegisterRoutes(e, db, jwt)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
