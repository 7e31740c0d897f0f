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

	_ "github.com/wmhmc/camp-attendance-api/api/swagger"
	"github.com/wmhmc/camp-attendance-api/internal/handler"
	"github.com/wmhmc/camp-attendance-api/internal/middleware"
	"github.com/wmhmc/camp-attendance-api/internal/repository"
	"github.com/wmhmc/camp-attendance-api/internal/service"
	"github.com/wmhmc/camp-attendance-api/pkg/cache"
	"github.com/wmhmc/camp-attendance-api/pkg/config"
	"github.com/wmhmc/camp-attendance-api/pkg/database"
	"github.com/wmhmc/camp-attendance-api/pkg/logger"
	corsmiddleware "github.com/wmhmc/camp-attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/wmhmc/camp-attendance-api/pkg/middleware/requestid"
)

// @title Camp Attendance API
// @version 1.0.0
// @description Staff, camp and assignment record keeping for hospital medical camps
// @BasePath /api/v1
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
	sugar := logr.Sugar()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		sugar.Fatalw("failed to ensure schema", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		sugar.Warnw("redis unavailable, dashboard cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.Enabled)
	}

	validate := validator.New()
	gate := service.NewWriteGate()

	staffRepo := repository.NewStaffRepository(db)
	campRepo := repository.NewCampRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	staffSvc := service.NewStaffService(staffRepo, gate, cacheSvc, validate, logr)
	campSvc := service.NewCampService(campRepo, gate, cacheSvc, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, campRepo, staffRepo, gate, cacheSvc, validate, logr)
	importerSvc := service.NewImporterService(staffRepo, gate, cacheSvc, logr)
	workbookSvc := service.NewWorkbookService(staffRepo, campRepo, assignmentRepo, nil, logr)
	rosterSvc := service.NewRosterService(campRepo, assignmentRepo, nil, nil, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, validate, logr)

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := settingsSvc.EnsureDefaults(startupCtx, cfg.Theme); err != nil {
		sugar.Warnw("failed to seed theme defaults", "error", err)
	}
	// Counters converge even if the database was edited out-of-band.
	if err := assignmentSvc.Recompute(startupCtx); err != nil {
		sugar.Warnw("startup attendance recompute failed", "error", err)
	}

	staffHandler := handler.NewStaffHandler(staffSvc, assignmentSvc, importerSvc, cfg.Imports.MaxFileSizeBytes)
	campHandler := handler.NewCampHandler(campSvc, assignmentSvc, rosterSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	exportHandler := handler.NewExportHandler(workbookSvc)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/staff", staffHandler.List)
		api.POST("/staff", staffHandler.Create)
		api.GET("/staff/:id", staffHandler.Get)
		api.PUT("/staff/:id", staffHandler.Update)
		api.DELETE("/staff/:id", staffHandler.Delete)
		api.GET("/staff/:id/assignments", staffHandler.Assignments)
		api.POST("/staff/import", staffHandler.Import)

		api.GET("/camps", campHandler.List)
		api.POST("/camps", campHandler.Create)
		api.DELETE("/camps/:id", campHandler.Delete)
		api.GET("/camps/:id/assignments", campHandler.Assignments)
		api.GET("/camps/:id/roster", campHandler.Roster)

		api.GET("/assignments", assignmentHandler.List)
		api.POST("/assignments", assignmentHandler.Assign)
		api.DELETE("/assignments", assignmentHandler.Unassign)

		api.GET("/dashboard", dashboardHandler.Summary)

		api.GET("/settings/theme", settingsHandler.Theme)
		api.PUT("/settings/theme", settingsHandler.UpdateTheme)

		api.GET("/export/workbook", exportHandler.Workbook)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	sugar.Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		sugar.Fatalw("server failed", "error", err)
	}
}
