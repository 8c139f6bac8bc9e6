package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campusbot/schedule-api/api/swagger"
	"github.com/campusbot/schedule-api/internal/catalog"
	"github.com/campusbot/schedule-api/internal/handler"
	"github.com/campusbot/schedule-api/internal/middleware"
	"github.com/campusbot/schedule-api/internal/render"
	"github.com/campusbot/schedule-api/internal/repository"
	"github.com/campusbot/schedule-api/internal/service"
	"github.com/campusbot/schedule-api/pkg/cache"
	"github.com/campusbot/schedule-api/pkg/config"
	"github.com/campusbot/schedule-api/pkg/database"
	"github.com/campusbot/schedule-api/pkg/logger"
	corsmiddleware "github.com/campusbot/schedule-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusbot/schedule-api/pkg/middleware/requestid"
)

// @title Campusbot Schedule API
// @version 0.1.0
// @description Weekly schedule rendering and mutual-enrollment matching
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

	courses, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logr.Sugar().Fatalw("failed to load course catalog", "path", cfg.Catalog.Path, "error", err)
	}
	logr.Sugar().Infow("course catalog loaded", "sections", courses.Len())

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	renderer, err := render.NewRenderer()
	if err != nil {
		logr.Sugar().Fatalw("failed to build renderer", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	enrollments := repository.NewEnrollmentRepository(db)
	scheduleSvc := service.NewScheduleService(enrollments, renderer, courses, metricsSvc, logr.Named("schedule"))
	mutualSvc := service.NewMutualService(enrollments, courses, logr.Named("mutual"))

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	mutualHandler := handler.NewMutualHandler(mutualSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)
	r.GET("/schedule", scheduleHandler.Render)
	r.GET("/mutuals", mutualHandler.List)
	r.GET("/mutuals/report", mutualHandler.Report)

	if cfg.Calendar.Enabled {
		calendarSvc := service.NewCalendarService(enrollments, courses, nil, logr.Named("calendar"))
		r.GET("/calendar.ics", handler.NewCalendarHandler(calendarSvc).Export)
	}

	if cfg.Import.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck

		tokenSvc := service.NewTokenService(cfg.Import.TokenSecret, cfg.Import.TokenTTL, repository.NewTokenStore(redisClient))
		importSvc := service.NewImportService(enrollments, courses, logr.Named("import"))
		importHandler := handler.NewImportHandler(tokenSvc, importSvc, cfg.Import.MaxUploadBytes)

		r.POST("/imports/tokens", importHandler.IssueToken)
		r.POST("/imports/upload", importHandler.Upload)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
