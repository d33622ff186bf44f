package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learneasy/internal/config"
	"learneasy/internal/database"
	"learneasy/internal/handlers"
	"learneasy/internal/llm"
	"learneasy/internal/notify"
	"learneasy/internal/quiz"
	"learneasy/internal/repository"
	"learneasy/internal/ussd"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize the completion provider
	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  cfg.GroqAPIKey,
		Model:   cfg.GroqModel,
		BaseURL: cfg.GroqBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize completion provider: %v", err)
	}

	log.Printf("Completion provider ready (model: %s)", provider.ModelID())

	// Initialize repositories and services
	playerRepo := repository.NewPlayerRepository(db)
	generator := quiz.NewGenerator(provider)
	evaluator := quiz.NewEvaluator(provider)
	smsService := notify.NewSMSService(cfg.ATBaseURL, cfg.ATUsername, cfg.ATAPIKey)
	machine := ussd.NewMachine(playerRepo, generator, evaluator, smsService)

	// Initialize handlers
	ussdHandler := handlers.NewUSSDHandler(machine)
	webHandler := handlers.NewWebHandler(playerRepo, generator, evaluator)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ussd", ussdHandler.Callback)
	mux.HandleFunc("GET /web", webHandler.Play)
	mux.HandleFunc("POST /web", webHandler.Submit)
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
