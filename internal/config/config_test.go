package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STOCK_SERVICE_URL", "ORDER_SERVICE_URL", "GATEWAY_TIMEOUT", "GROQ_API_KEY", "USE_MEMORY_STORE", "RANDOM_SEED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3004", cfg.Port)
	assert.Equal(t, "http://localhost:3001", cfg.StockServiceURL)
	assert.Equal(t, "http://localhost:3002", cfg.OrderServiceURL)
	assert.Equal(t, 5*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.ChatModel)
	assert.Equal(t, "whisper-large-v3", cfg.TranscribeModel)
	assert.Equal(t, "id", cfg.TranscribeLanguage)
	assert.Equal(t, "user_default", cfg.DefaultUserID)
	assert.Equal(t, "Pelanggan", cfg.CustomerLabel)
	assert.True(t, cfg.UseMemoryStore)
	assert.False(t, cfg.OracleConfigured())
	assert.Zero(t, cfg.RandomSeed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GATEWAY_TIMEOUT", "750ms")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("SERVE_INVENTORY", "true")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.GatewayTimeout)
	assert.True(t, cfg.OracleConfigured())
	assert.True(t, cfg.ServeInventory)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"GATEWAY_TIMEOUT": "soon",
		"SERVE_INVENTORY": "maybe",
		"DB_PORT":         "postgres",
		"RANDOM_SEED":     "abc",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}

	t.Run("non-positive timeout", func(t *testing.T) {
		t.Setenv("GATEWAY_TIMEOUT", "0s")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadLocalGatewayNeedsInventory(t *testing.T) {
	t.Setenv("LOCAL_GATEWAY", "true")
	t.Setenv("SERVE_INVENTORY", "false")
	_, err := Load()
	assert.ErrorContains(t, err, "SERVE_INVENTORY")

	t.Setenv("SERVE_INVENTORY", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.LocalGateway)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "secret", Name: "tokopesan"}
	assert.Equal(t, "host=localhost user=postgres password=secret dbname=tokopesan port=5432 sslmode=disable", db.DSN())

	db.InstanceConnectionName = "proj:region:inst"
	assert.Equal(t, "host=/cloudsql/proj:region:inst user=postgres password=secret dbname=tokopesan sslmode=disable", db.DSN())
}

func TestLoadDotEnvKeepsExistingEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7777\nCHAT_MODEL=from-file\n"), 0o600))

	t.Setenv("PORT", "8888")
	t.Setenv("CHAT_MODEL", "")
	os.Unsetenv("CHAT_MODEL")

	LoadDotEnv(path)
	t.Cleanup(func() { os.Unsetenv("CHAT_MODEL") })

	assert.Equal(t, "8888", os.Getenv("PORT"))
	assert.Equal(t, "from-file", os.Getenv("CHAT_MODEL"))
}

func TestTwilioConfigured(t *testing.T) {
	assert.False(t, TwilioConfig{AccountSID: "AC1"}.Configured())
	assert.True(t, TwilioConfig{AccountSID: "AC1", AuthToken: "tok", WhatsAppFrom: "+1415"}.Configured())
}
