package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/oakline/propmaint-api/api/swagger"
	"github.com/oakline/propmaint-api/internal/handler"
	"github.com/oakline/propmaint-api/internal/middleware"
	"github.com/oakline/propmaint-api/internal/repository"
	"github.com/oakline/propmaint-api/internal/service"
	"github.com/oakline/propmaint-api/pkg/cache"
	"github.com/oakline/propmaint-api/pkg/config"
	"github.com/oakline/propmaint-api/pkg/database"
	"github.com/oakline/propmaint-api/pkg/logger"
	corsmiddleware "github.com/oakline/propmaint-api/pkg/middleware/cors"
	reqidmiddleware "github.com/oakline/propmaint-api/pkg/middleware/requestid"
)

// @title Property Maintenance API
// @version 1.0.0
// @description Buildings, apartments, maintenance requests, parts and reports
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional; without it reports skip the cache path.
	var cacheRepo *repository.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, report caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	caps, err := repository.NewSchemaRepository(db).Capabilities(startupCtx)
	if err != nil {
		logr.Sugar().Fatalw("failed to probe schema capabilities", "error", err)
	}
	logr.Sugar().Infow("schema capabilities resolved",
		"photos", caps.Photos, "notes", caps.Notes, "history", caps.History)

	validate := validator.New()

	buildingRepo := repository.NewBuildingRepository(db)
	apartmentRepo := repository.NewApartmentRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	partRepo := repository.NewPartRepository(db)
	reportRepo := repository.NewReportRepository(db)

	metricsSvc := service.NewMetricsService()
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, cfg.Reports, metricsSvc, logr)
	}
	buildingSvc := service.NewBuildingService(buildingRepo, validate, logr)
	apartmentSvc := service.NewApartmentService(apartmentRepo, logr)
	requestSvc := service.NewRequestService(requestRepo, caps, cacheSvc, cfg.Requests, validate, logr)
	employeeSvc := service.NewEmployeeService(employeeRepo, validate)
	partSvc := service.NewPartService(partRepo, validate)
	reportSvc := service.NewReportService(reportRepo, cacheSvc)
	exportSvc := service.NewExportService()

	buildingHandler := handler.NewBuildingHandler(buildingSvc, apartmentSvc)
	requestHandler := handler.NewRequestHandler(requestSvc)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	partHandler := handler.NewPartHandler(partSvc)
	reportHandler := handler.NewReportHandler(reportSvc, exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	buildings := r.Group("/buildings")
	{
		buildings.GET("", buildingHandler.List)
		buildings.POST("", buildingHandler.Create)
		buildings.PUT("/:id", buildingHandler.Update)
		buildings.GET("/:id/apartments", buildingHandler.ListApartments)
		buildings.PUT("/:id/apartments/:apt", buildingHandler.UpdateApartment)
		buildings.GET("/:id/apartments/:apt/vacancy", buildingHandler.GetVacancy)
		buildings.PUT("/:id/apartments/:apt/vacancy", buildingHandler.SetVacancy)
	}

	requests := r.Group("/requests")
	{
		requests.GET("", requestHandler.List)
		requests.POST("", requestHandler.Create)
		requests.GET("/:id", requestHandler.Get)
		requests.PUT("/:id", requestHandler.Update)
		requests.DELETE("/:id", requestHandler.Cancel)
	}

	employees := r.Group("/employees")
	{
		employees.GET("", employeeHandler.List)
		employees.POST("", employeeHandler.Create)
	}

	parts := r.Group("/employee/parts")
	{
		parts.GET("", partHandler.List)
		parts.POST("", partHandler.Create)
		parts.GET("/:id", partHandler.Get)
		parts.PUT("/:id", partHandler.Update)
		parts.PUT("/:id/status", partHandler.AdjustQuantity)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/cost", reportHandler.Cost)
		reports.GET("/revenue", reportHandler.Revenue)
		reports.GET("/vacancies", reportHandler.Vacancies)
		reports.GET("/average-monthly-requests", reportHandler.AverageMonthlyRequests)
		reports.GET("/building-activity", reportHandler.BuildingActivity)
		reports.GET("/active-requests", reportHandler.ActiveRequests)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
