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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"maitred/internal/agent"
	"maitred/internal/api"
	"maitred/internal/config"
	"maitred/internal/database"
	"maitred/internal/ledger"
	"maitred/internal/lifecycle"
	"maitred/internal/logging"
	"maitred/internal/menu"
	"maitred/internal/monitoring"
	"maitred/internal/notify"
	"maitred/internal/pricing"
	"maitred/internal/store"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides configuration)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides configuration)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Core domain
	catalog := menu.Default()
	engine := pricing.New(catalog, cfg.ParseTaxRate())
	orders := store.New()
	monitor := monitoring.New()

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize kitchen transport", zap.Error(err))
	}

	orderLog, err := newLedger(cfg)
	if err != nil {
		logger.Fatal("failed to initialize order ledger", zap.Error(err))
	}

	service := lifecycle.New(lifecycle.Deps{
		Catalog:          catalog,
		Pricing:          engine,
		Store:            orders,
		Notifier:         notifier,
		Ledger:           orderLog,
		Monitor:          monitor,
		Logger:           logger,
		DispatchTimeout:  cfg.DispatchTimeout(),
		DefaultRecipient: cfg.Notifier.Email.To,
	})

	// Conversation driver. A missing or failing model leaves the REST
	// surface fully functional; only /chat degrades.
	var driver *agent.Driver
	if model, err := initializeModel(cfg); err != nil {
		logger.Warn("conversation model unavailable, chat disabled", zap.Error(err))
	} else if model != nil {
		driver = agent.NewDriver(agent.Config{
			Model:        model,
			Service:      service,
			Catalog:      catalog,
			Monitor:      monitor,
			Logger:       logger,
			Restaurant:   cfg.Agent.Restaurant,
			HistoryLimit: cfg.Agent.HistoryLimit,
		})
	}

	server := api.NewServer(api.Config{
		Service: service,
		Driver:  driver,
		Monitor: monitor,
		Logger:  logger,
	})

	// Start metrics server
	go startMetricsServer(cfg.Server.MetricsPort, monitor, logger)

	// Start API server
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("api server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("starting api server", zap.Int("port", cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("api server error", zap.Error(err))
	}
}

// initializeModel builds the LLM client for the configured provider. An
// empty provider runs the service without the conversational surface.
func initializeModel(cfg *config.Config) (llms.Model, error) {
	switch cfg.LLM.Provider {
	case "":
		return nil, nil
	case "openai":
		return openai.New(
			openai.WithToken(cfg.LLM.APIKey),
			openai.WithModel(cfg.LLM.Model),
		)
	case "ollama":
		return ollama.New(
			ollama.WithServerURL(cfg.LLM.ServerURL),
			ollama.WithModel(cfg.LLM.Model),
		)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// newNotifier builds the configured kitchen transport.
func newNotifier(cfg *config.Config, logger *zap.Logger) (lifecycle.Notifier, error) {
	switch cfg.Notifier.Backend {
	case "email":
		e := cfg.Notifier.Email
		return notify.NewEmail(e.Host, e.Port, e.From, e.Password), nil
	case "amqp":
		return notify.NewAMQP(cfg.Notifier.AMQP.URL, cfg.Notifier.AMQP.Exchange, logger)
	default:
		return nil, fmt.Errorf("unknown notifier backend %q", cfg.Notifier.Backend)
	}
}

// newLedger builds the configured durable order log.
func newLedger(cfg *config.Config) (lifecycle.Ledger, error) {
	switch cfg.Ledger.Backend {
	case "excel":
		return ledger.NewExcel(cfg.Ledger.Excel.Path), nil
	case "database":
		db, err := database.Open(cfg.Ledger.Database.Dialect, cfg.Ledger.Database.DSN)
		if err != nil {
			return nil, err
		}
		return ledger.NewDatabase(db)
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}

// startMetricsServer serves the Prometheus registry on its own port.
func startMetricsServer(port int, monitor *monitoring.Monitor, logger *zap.Logger) {
	metricsRouter := gin.New()
	metricsRouter.Use(gin.Recovery())
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(monitor.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	logger.Info("starting metrics server", zap.Int("port", port))
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("metrics server error", zap.Error(err))
	}
}
