package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wizard-writing-study/internal/completion"
	"wizard-writing-study/internal/config"
	"wizard-writing-study/internal/db"
	"wizard-writing-study/internal/document"
	"wizard-writing-study/internal/export"
	"wizard-writing-study/internal/middleware"
	"wizard-writing-study/internal/realtime"
	"wizard-writing-study/internal/snapshot"
	"wizard-writing-study/internal/suggestion"
	"wizard-writing-study/internal/user"
	"wizard-writing-study/internal/wizard"
	"wizard-writing-study/internal/worker"
	"wizard-writing-study/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Connect to database
	db.ConnectDb()
	defer db.CloseDb()

	// Migrate database schema
	db.Migrate()

	// Seed database with initial data (for development)
	if config.AppConfig.Environment == "development" {
		db.SeedData()
	}

	// Initialize Redis
	redis.InitRedis()

	// Background workers for change-event fan-out and snapshot writes
	pool := worker.NewWorkerPool(4)
	defer pool.Shutdown()

	// Realtime change feed
	hub := realtime.NewHub()
	bus := realtime.NewBus(hub, pool)
	busCtx, stopBus := context.WithCancel(context.Background())
	defer stopBus()
	go bus.Run(busCtx)

	// Initialize repositories
	userRepo := user.NewRepository(db.AppDb)
	docRepo := document.NewRepository(db.AppDb)
	suggestionRepo := suggestion.NewRepository(db.AppDb)
	snapshotRepo := snapshot.NewRepository(db.AppDb)

	// Initialize services
	userService := user.NewService(userRepo, bus)
	docService := document.NewService(docRepo, bus)
	suggestionService := suggestion.NewService(suggestionRepo, docService, bus)
	snapshotService := snapshot.NewService(snapshotRepo)
	completionClient := completion.NewClient(
		config.AppConfig.LLMBaseURL,
		config.AppConfig.LLMAPIKey,
		config.AppConfig.LLMModel,
	)
	completionService := completion.NewService(completionClient)
	exportService := export.NewService(userService, docService, suggestionService, snapshotService)

	// Initialize handlers
	userHandler := user.NewHandler(userService, docService)
	docHandler := document.NewHandler(docService)
	suggestionHandler := suggestion.NewHandler(suggestionService)
	snapshotHandler := snapshot.NewHandler(snapshotService)
	completionHandler := completion.NewHandler(completionService)
	exportHandler := export.NewHandler(exportService)
	wizardHandler := wizard.NewHandler()
	realtimeHandler := realtime.NewHandler(hub)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}

	if config.AppConfig.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Public routes
	router.POST("/login", userHandler.Login)
	router.GET("/users", userHandler.ListUsers)
	router.POST("/wizard/login", wizardHandler.Login)

	// Realtime change feed (token passed as query param)
	router.GET("/ws", realtimeHandler.Subscribe)

	// Writer routes
	router.GET("/documents/me", middleware.WriterAuth(), docHandler.ShowMyDocument)
	router.PUT("/documents/:id", middleware.WriterAuth(), docHandler.Save)
	router.GET("/suggestions", middleware.WriterAuth(), suggestionHandler.List)
	router.GET("/suggestions/active", middleware.WriterAuth(), suggestionHandler.ShowActive)
	router.POST("/suggestions/:id/accept", middleware.WriterAuth(), suggestionHandler.Accept)
	router.POST("/suggestions/:id/partial-accept", middleware.WriterAuth(), suggestionHandler.PartialAccept)
	router.POST("/suggestions/:id/reject", middleware.WriterAuth(), suggestionHandler.Reject)
	router.POST("/suggestions/:id/like", middleware.WriterAuth(), suggestionHandler.Like)
	router.POST("/suggestions/:id/apply", middleware.WriterAuth(), suggestionHandler.Apply)
	router.POST("/snapshots", middleware.WriterAuth(), snapshotHandler.Record)

	// Operator (wizard) routes
	router.GET("/wizard/users", middleware.WizardAuth(), userHandler.ListUsersFull)
	router.GET("/wizard/users/:id/document", middleware.WizardAuth(), docHandler.ShowUserDocument)
	router.GET("/wizard/users/:id/suggestions", middleware.WizardAuth(), suggestionHandler.ListForUser)
	router.POST("/wizard/suggestions", middleware.WizardAuth(), suggestionHandler.Send)
	router.GET("/wizard/export/users/:id/detail.csv", middleware.WizardAuth(), exportHandler.UserDetailCSV)
	router.GET("/wizard/export/summary.csv", middleware.WizardAuth(), exportHandler.SummaryCSV)
	router.GET("/wizard/export/archive.zip", middleware.WizardAuth(), exportHandler.Archive)

	// Completion proxy (operator drafting aid)
	router.POST("/suggestion", middleware.WizardAuth(), completionHandler.Suggest)
	router.POST("/comment-suggestion", middleware.WizardAuth(), completionHandler.CommentSuggest)

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Printf("Server listening on port %s", serverPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	<-ctx.Done()
	log.Println("Server shutdown complete")
}
