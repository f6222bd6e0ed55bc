package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/wellspringapp/wellspring/backend/internal/config"
	"github.com/wellspringapp/wellspring/backend/internal/handlers"
	"github.com/wellspringapp/wellspring/backend/internal/logger"
	"github.com/wellspringapp/wellspring/backend/internal/middleware"
	"github.com/wellspringapp/wellspring/backend/internal/repository"
	"github.com/wellspringapp/wellspring/backend/internal/service"
	"github.com/wellspringapp/wellspring/backend/pkg/postgrest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port           string
	allowedOrigins string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&allowedOrigins, "cors-origins", "", "Comma-separated list of allowed CORS origins")
}

func analysisOptions(cfg *config.Config) service.AnalysisOptions {
	return service.AnalysisOptions{
		MinEntriesForCorrelation: cfg.Analysis.MinEntriesForCorrelation,
		MinEntriesForTrends:      cfg.Analysis.MinEntriesForTrends,
		ConfidenceThreshold:      cfg.Analysis.ConfidenceThreshold,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	logger.SetDefault(log)

	log.Info("starting wellspring api server",
		logger.String("env", cfg.Server.Env),
		logger.String("storage_url", cfg.Storage.URL),
	)

	// Storage client and repositories
	client := postgrest.NewClient(cfg.Storage.URL, cfg.Storage.ServiceKey)
	recordRepo := repository.NewWellnessRecordRepository(client)
	goalRepo := repository.NewGoalRepository(client)
	progressRepo := repository.NewProgressRepository(client)

	// Services
	opts := analysisOptions(cfg)
	recordService := service.NewRecordService(recordRepo)
	goalService := service.NewGoalService(goalRepo, progressRepo)
	analyticsService := service.NewAnalyticsService(opts)
	optimizer := service.NewGoalOptimizer(opts)

	// Handlers
	recordsHandler := handlers.NewRecordsHandler(recordService)
	goalsHandler := handlers.NewGoalsHandler(goalService, optimizer)
	insightsHandler := handlers.NewInsightsHandler(recordService, analyticsService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.Logger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.Server.APIKey))
	{
		v1.GET("/records", recordsHandler.ListRecords)
		v1.POST("/records", recordsHandler.CreateRecord)
		v1.GET("/records/:id", recordsHandler.GetRecord)
		v1.PATCH("/records/:id", recordsHandler.UpdateRecord)
		v1.DELETE("/records/:id", recordsHandler.DeleteRecord)

		v1.GET("/goals", goalsHandler.ListGoals)
		v1.POST("/goals", goalsHandler.CreateGoal)
		v1.GET("/goals/correlations", goalsHandler.CrossGoalCorrelations)
		v1.GET("/goals/:id", goalsHandler.GetGoal)
		v1.PATCH("/goals/:id", goalsHandler.UpdateGoal)
		v1.DELETE("/goals/:id", goalsHandler.DeleteGoal)
		v1.GET("/goals/:id/progress", goalsHandler.ListProgress)
		v1.POST("/goals/:id/progress", goalsHandler.AddProgress)
		v1.GET("/goals/:id/analysis", goalsHandler.AnalyzeGoal)

		v1.GET("/insights", insightsHandler.GetInsights)
		v1.GET("/insights/correlations", insightsHandler.GetCorrelations)
		v1.GET("/insights/trends", insightsHandler.GetTrends)
		v1.GET("/insights/pattern", insightsHandler.GetWeeklyPattern)
		v1.GET("/insights/suggestions", insightsHandler.GetSuggestions)
		v1.GET("/insights/metrics", insightsHandler.GetMetrics)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
