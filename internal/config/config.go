package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment
type Config struct {
	Port string

	StockServiceURL string
	OrderServiceURL string
	GatewayTimeout  time.Duration

	GroqAPIKey         string
	GroqBaseURL        string
	ChatModel          string
	TranscribeModel    string
	TranscribeLanguage string

	CatalogFile    string
	ServeInventory bool
	LocalGateway   bool // talk to the served inventory in process instead of over HTTP
	UseMemoryStore bool
	DefaultUserID  string
	CustomerLabel  string
	RandomSeed     int64

	AdminWhatsApp     string // receives low stock alerts
	LowStockThreshold int
	LowStockInterval  time.Duration

	Database DatabaseConfig
	Twilio   TwilioConfig
}

// DatabaseConfig is the postgres connection used by the local inventory
type DatabaseConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	Name                   string
	InstanceConnectionName string // Cloud SQL socket, overrides Host/Port
}

// TwilioConfig is the WhatsApp channel
type TwilioConfig struct {
	AccountSID    string
	AuthToken     string
	WhatsAppFrom  string
	SkipSignature bool
}

// Configured reports whether WhatsApp replies can be sent
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.WhatsAppFrom != ""
}

// LoadDotEnv loads .env files for local development. Variables already in the
// environment are never overwritten.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "environments/.env.development"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			log.Printf("🔧 Loaded environment from %s", p)
			return
		}
	}
	log.Println("⚠️  No .env file found - checking environment variables")
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "3004"),
		StockServiceURL:    getEnv("STOCK_SERVICE_URL", "http://localhost:3001"),
		OrderServiceURL:    getEnv("ORDER_SERVICE_URL", "http://localhost:3002"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		ChatModel:          getEnv("CHAT_MODEL", "llama-3.3-70b-versatile"),
		TranscribeModel:    getEnv("TRANSCRIBE_MODEL", "whisper-large-v3"),
		TranscribeLanguage: getEnv("TRANSCRIBE_LANGUAGE", "id"),
		CatalogFile:        os.Getenv("CATALOG_FILE"),
		DefaultUserID:      getEnv("DEFAULT_USER_ID", "user_default"),
		AdminWhatsApp:      os.Getenv("ADMIN_WHATSAPP"),
		CustomerLabel:      getEnv("CUSTOMER_LABEL", "Pelanggan"),
		Database: DatabaseConfig{
			Host:                   getEnv("DB_HOST", "localhost"),
			User:                   getEnv("DB_USER", "postgres"),
			Password:               os.Getenv("DB_PASS"),
			Name:                   getEnv("DB_NAME", "tokopesan"),
			InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		},
		Twilio: TwilioConfig{
			AccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),
		},
	}

	var err error
	if cfg.GatewayTimeout, err = getDuration("GATEWAY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ServeInventory, err = getBool("SERVE_INVENTORY", false); err != nil {
		return nil, err
	}
	if cfg.LocalGateway, err = getBool("LOCAL_GATEWAY", false); err != nil {
		return nil, err
	}
	if cfg.UseMemoryStore, err = getBool("USE_MEMORY_STORE", true); err != nil {
		return nil, err
	}
	if cfg.Twilio.SkipSignature, err = getBool("TWILIO_SKIP_SIGNATURE", false); err != nil {
		return nil, err
	}
	if cfg.Database.Port, err = getInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.LowStockThreshold, err = getInt("LOW_STOCK_THRESHOLD", 5); err != nil {
		return nil, err
	}
	if cfg.LowStockInterval, err = getDuration("LOW_STOCK_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	seed, err := getInt("RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.RandomSeed = int64(seed)

	if cfg.LocalGateway && !cfg.ServeInventory {
		return nil, fmt.Errorf("LOCAL_GATEWAY requires SERVE_INVENTORY")
	}
	if cfg.ServeInventory && cfg.LowStockInterval <= 0 {
		return nil, fmt.Errorf("LOW_STOCK_INTERVAL must be positive, got %s", cfg.LowStockInterval)
	}
	if cfg.GatewayTimeout <= 0 {
		return nil, fmt.Errorf("GATEWAY_TIMEOUT must be positive, got %s", cfg.GatewayTimeout)
	}
	return cfg, nil
}

// OracleConfigured reports whether the fallback can call the language model
func (c *Config) OracleConfigured() bool {
	return c.GroqAPIKey != ""
}

// DSN builds the postgres connection string
func (d DatabaseConfig) DSN() string {
	if d.InstanceConnectionName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			d.InstanceConnectionName, d.User, d.Password, d.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
