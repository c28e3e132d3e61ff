package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/opt-telecom/horarios-api/api/swagger"
	"github.com/opt-telecom/horarios-api/internal/handler"
	"github.com/opt-telecom/horarios-api/internal/middleware"
	"github.com/opt-telecom/horarios-api/internal/repository"
	"github.com/opt-telecom/horarios-api/internal/service"
	"github.com/opt-telecom/horarios-api/internal/timetable"
	"github.com/opt-telecom/horarios-api/pkg/cache"
	"github.com/opt-telecom/horarios-api/pkg/config"
	"github.com/opt-telecom/horarios-api/pkg/database"
	"github.com/opt-telecom/horarios-api/pkg/logger"
	corsmiddleware "github.com/opt-telecom/horarios-api/pkg/middleware/cors"
	reqidmiddleware "github.com/opt-telecom/horarios-api/pkg/middleware/requestid"
)

// @title Horarios API
// @version 1.0.0
// @description Timetable assignment engine for academic periods
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	professorRepo := repository.NewProfessorRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	restrictionRepo := repository.NewRestrictionRepository(db)
	requestRepo := repository.NewClassRequestRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	versionRepo := repository.NewVersionRepository(db)

	professorSvc := service.NewProfessorService(professorRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	restrictionSvc := service.NewRestrictionService(restrictionRepo, validate, logr)
	requestSvc := service.NewClassRequestService(requestRepo, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, redisClient, cfg.Timetable.CacheTTL, logr)
	versionSvc := service.NewVersionService(versionRepo, timetableRepo, db, timetableSvc, logr)
	generationSvc := service.NewGenerationService(
		professorRepo,
		subjectRepo,
		roomRepo,
		restrictionRepo,
		requestRepo,
		timetableRepo,
		versionRepo,
		db,
		timetableSvc,
		metricsSvc,
		engineConfig(cfg.Generator, logr),
		logr,
	)

	professorH := handler.NewProfessorHandler(professorSvc)
	subjectH := handler.NewSubjectHandler(subjectSvc)
	roomH := handler.NewRoomHandler(roomSvc)
	restrictionH := handler.NewRestrictionHandler(restrictionSvc)
	requestH := handler.NewClassRequestHandler(requestSvc)
	timetableH := handler.NewTimetableHandler(timetableSvc)
	versionH := handler.NewVersionHandler(versionSvc)
	generationH := handler.NewGenerationHandler(generationSvc)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
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
		professors := api.Group("/professors")
		{
			professors.GET("", professorH.List)
			professors.POST("", professorH.Create)
			professors.GET("/:id", professorH.Get)
			professors.PUT("/:id", professorH.Update)
			professors.DELETE("/:id", professorH.Delete)
		}

		subjects := api.Group("/subjects")
		{
			subjects.GET("", subjectH.List)
			subjects.POST("", subjectH.Create)
			subjects.GET("/:id", subjectH.Get)
			subjects.PUT("/:id", subjectH.Update)
			subjects.DELETE("/:id", subjectH.Delete)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomH.List)
			rooms.POST("", roomH.Create)
			rooms.GET("/:id", roomH.Get)
			rooms.PUT("/:id", roomH.Update)
			rooms.DELETE("/:id", roomH.Delete)
		}

		restrictions := api.Group("/restrictions")
		{
			restrictions.GET("", restrictionH.List)
			restrictions.POST("", restrictionH.Create)
			restrictions.GET("/:id", restrictionH.Get)
			restrictions.DELETE("/:id", restrictionH.Delete)
		}

		requests := api.Group("/class-requests")
		{
			requests.GET("", requestH.List)
			requests.POST("", requestH.Create)
			requests.DELETE("", requestH.DeleteAll)
			requests.POST("/bulk", requestH.CreateBulk)
			requests.GET("/:id", requestH.Get)
			requests.POST("/:id/cancel", requestH.Cancel)
			requests.DELETE("/:id", requestH.Delete)
		}

		api.POST("/generation/run", generationH.Generate)

		timetables := api.Group("/timetable")
		{
			timetables.GET("", timetableH.List)
			timetables.DELETE("", timetableH.Clear)
			timetables.GET("/export/csv", timetableH.ExportCSV)
			timetables.GET("/export/pdf", timetableH.ExportPDF)
		}

		versions := api.Group("/versions")
		{
			versions.GET("", versionH.List)
			versions.POST("", versionH.Save)
			versions.GET("/:id", versionH.Get)
			versions.POST("/:id/restore", versionH.Restore)
			versions.DELETE("/:id", versionH.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// engineConfig maps generator settings onto the engine. Unparseable clock
// values fall back to the engine defaults.
func engineConfig(gen config.GeneratorConfig, logr *zap.Logger) timetable.Config {
	cfg := timetable.Config{
		Days:          gen.Days,
		BlockHours:    gen.BlockHours,
		AttemptFactor: gen.AttemptFactor,
		Seed:          gen.Seed,
	}

	start, err := timetable.ParseClock(gen.DayStart)
	if err != nil {
		logr.Sugar().Warnw("invalid generator day start, using default", "value", gen.DayStart, "error", err)
		return cfg
	}
	end, err := timetable.ParseClock(gen.DayEnd)
	if err != nil {
		logr.Sugar().Warnw("invalid generator day end, using default", "value", gen.DayEnd, "error", err)
		return cfg
	}

	cfg.DayStart = start
	cfg.DayEnd = end
	return cfg
}
