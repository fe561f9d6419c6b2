package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivethru/internal/admin"
	"drivethru/internal/api"
	"drivethru/internal/config"
	"drivethru/internal/database"
	"drivethru/internal/interpreter"
	"drivethru/internal/inventory"
	"drivethru/internal/menu"
	"drivethru/internal/order"
	"drivethru/internal/speech"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "", "Path to configuration file")
	dbPath      = flag.String("db", "", "Database DSN (overrides config)")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort > 0 {
		cfg.Metrics.Port = *metricsPort
	}
	if *dbPath != "" {
		cfg.Database.DSN = *dbPath
	}

	model, err := initializeLLM(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	store := inventory.NewStore(db)
	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := store.Seed(inventory.DefaultMenu()); err != nil {
		log.Fatalf("Failed to seed menu: %v", err)
	}

	sessions := order.NewManager(time.Duration(cfg.Ordering.SessionTTLMinutes) * time.Minute)
	go sweepSessions(ctx, sessions)

	deps := api.Deps{
		Store:       store,
		Sessions:    sessions,
		Board:       menu.DefaultBoard(),
		OrderIntent: interpreter.NewOrderTaker(model),
		AdminIntent: interpreter.NewAdminInterpreter(model),
		Confirmer:   interpreter.NewConfirmer(model),
		Admin:       admin.New(store, cfg.Ordering.LowStockThreshold, cfg.Ordering.ReorderAmount),
	}
	if key := cfg.APIKey(); key != "" {
		speechClient := speech.NewOpenAIClient(key, cfg.LLM.BaseURL)
		deps.Transcriber = speechClient
		deps.Synthesizer = speechClient
	}

	server := api.NewServer(cfg, deps)

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeLLM(cfg *config.Config) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.LLM.Model),
	}
	if key := cfg.APIKey(); key != "" {
		opts = append(opts, openai.WithToken(key))
	}
	if cfg.LLM.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.LLM.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return llm, nil
}

func sweepSessions(ctx context.Context, sessions *order.Manager) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.Sweep(); removed > 0 {
				log.Printf("Swept %d idle sessions", removed)
			}
		}
	}
}

func startMetricsServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}
	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
