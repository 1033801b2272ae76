package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ananth-NQI/tokopesan-backend/database"
	"github.com/Ananth-NQI/tokopesan-backend/internal/config"
	"github.com/Ananth-NQI/tokopesan-backend/internal/handlers"
	"github.com/Ananth-NQI/tokopesan-backend/internal/jobs"
	"github.com/Ananth-NQI/tokopesan-backend/internal/routes"
	"github.com/Ananth-NQI/tokopesan-backend/internal/services"
	"github.com/Ananth-NQI/tokopesan-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		config.LoadDotEnv()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	catalog := services.DefaultCatalog()
	if cfg.CatalogFile != "" {
		catalog, err = services.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			log.Fatal("Failed to load catalog: ", err)
		}
		log.Printf("📚 Catalog loaded from %s (%d products)", cfg.CatalogFile, len(catalog.Products))
	}

	status := handlers.HealthStatus{
		Version: version,
		Oracle:  cfg.OracleConfigured(),
		Gateway: "http",
	}

	// Initialize the local inventory only when this process serves it
	var store storage.Store
	if cfg.ServeInventory {
		if cfg.UseMemoryStore {
			log.Println("⚠️  Using in-memory inventory (not for production!)")
			store = storage.NewMemoryStore()
			status.Storage = "memory"
		} else {
			log.Println("📦 Connecting to PostgreSQL database...")
			db, err := database.Connect(cfg.Database)
			if err != nil {
				log.Fatal(err)
			}
			if err := database.Migrate(db); err != nil {
				log.Fatal(err)
			}
			store = storage.NewDatabaseStore(db)
			status.Storage = "postgres"
			status.Ping = func() error { return database.Ping(db) }
			log.Println("✅ Using PostgreSQL database storage")
		}
		if err := catalog.Seed(store); err != nil {
			log.Fatal("Failed to seed inventory: ", err)
		}
	}

	var stock services.StockGateway
	var orders services.OrderGateway
	if cfg.LocalGateway {
		gw := services.NewStoreGateway(store)
		stock, orders = gw, gw
		status.Gateway = "local"
	} else {
		gw := services.NewHTTPGateway(cfg.StockServiceURL, cfg.OrderServiceURL, cfg.GatewayTimeout)
		stock, orders = gw, gw
	}

	groqCfg := services.GroqConfig{
		APIKey:             cfg.GroqAPIKey,
		BaseURL:            cfg.GroqBaseURL,
		ChatModel:          cfg.ChatModel,
		Temperature:        0.8,
		MaxTokens:          200,
		TranscriptionModel: cfg.TranscribeModel,
		Language:           cfg.TranscribeLanguage,
	}
	var oracle services.CompletionOracle
	var transcriber services.Transcriber
	if cfg.OracleConfigured() {
		oracle = services.NewGroqOracle(groqCfg)
		transcriber = services.NewGroqTranscriber(groqCfg)
		log.Printf("🤖 Fallback oracle: %s", cfg.ChatModel)
	} else {
		log.Println("⚠️  GROQ_API_KEY not set - fallback answers with static help")
	}

	assistant := services.NewAssistant(services.AssistantDeps{
		Sessions: services.NewSessionManager(),
		Catalog:  catalog,
		Stock:    stock,
		Orders:   orders,
		Oracle:   oracle,
		Picker:   services.NewPicker(cfg.RandomSeed),
		Customer: cfg.CustomerLabel,
	})

	var sender services.MessageSender
	if cfg.Twilio.Configured() {
		twilioService, err := services.NewTwilioService(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom)
		if err != nil {
			log.Fatal("Failed to initialize Twilio service: ", err)
		}
		sender = twilioService
		status.WhatsApp = true
		log.Println("✅ Twilio service initialized")
	} else {
		log.Println("⚠️  Twilio credentials not found - WhatsApp replies are logged only")
	}

	var lowStock *jobs.LowStockJob
	if store != nil {
		lowStock = jobs.NewLowStockJob(store, sender, cfg.AdminWhatsApp, cfg.LowStockThreshold, cfg.LowStockInterval)
		lowStock.Start()
	}

	app := routes.NewApp("TokoPesan Assistant v" + version)
	h := routes.Handlers{
		Chat:            handlers.NewChatHandler(assistant, transcriber, cfg.DefaultUserID),
		WhatsApp:        handlers.NewWhatsAppHandler(assistant, sender),
		Health:          handlers.NewHealthHandler(status, assistant.Sessions()),
		TwilioAuthToken: cfg.Twilio.AuthToken,
		SkipSignature:   cfg.Twilio.SkipSignature,
	}
	if store != nil {
		h.Inventory = handlers.NewInventoryHandler(store)
	}
	routes.SetupRoutes(app, h)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		if lowStock != nil {
			lowStock.Stop()
		}
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 TokoPesan Assistant starting on port %s", cfg.Port)
	log.Printf("📦 Stock service: %s", describeGateway(status.Gateway, cfg.StockServiceURL))
	log.Printf("🛒 Order service: %s", describeGateway(status.Gateway, cfg.OrderServiceURL))
	log.Printf("📊 Inventory: %s", describeStorage(status.Storage))
	log.Printf("📱 WhatsApp: %s", describeBool(status.WhatsApp))
	log.Println("========================================")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func describeGateway(mode, url string) string {
	if mode == "local" {
		return "in-process inventory"
	}
	return url
}

func describeStorage(kind string) string {
	if kind == "" {
		return "remote"
	}
	return kind
}

func describeBool(configured bool) string {
	if configured {
		return "Configured"
	}
	return "Not configured"
}
