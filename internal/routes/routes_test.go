package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/tokopesan-backend/internal/handlers"
	"github.com/Ananth-NQI/tokopesan-backend/internal/services"
	"github.com/Ananth-NQI/tokopesan-backend/internal/storage"
)

func newTestApp(t *testing.T, serveInventory, skipSignature bool) *fiber.App {
	t.Helper()
	store := storage.NewMemoryStore()
	catalog := services.DefaultCatalog()
	require.NoError(t, catalog.Seed(store))
	gw := services.NewStoreGateway(store)

	assistant := services.NewAssistant(services.AssistantDeps{
		Catalog: catalog,
		Stock:   gw,
		Orders:  gw,
		Picker:  services.NewPicker(1),
	})

	h := Handlers{
		Chat:            handlers.NewChatHandler(assistant, nil, "user_default"),
		WhatsApp:        handlers.NewWhatsAppHandler(assistant, nil),
		Health:          handlers.NewHealthHandler(handlers.HealthStatus{Version: "test", Gateway: "local"}, assistant.Sessions()),
		TwilioAuthToken: "secret",
		SkipSignature:   skipSignature,
	}
	if serveInventory {
		h.Inventory = handlers.NewInventoryHandler(store)
	}

	app := NewApp("test")
	SetupRoutes(app, h)
	return app
}

func TestChatRoundTripThroughLocalInventory(t *testing.T) {
	app := newTestApp(t, true, true)

	chat := func(msg string) string {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"`+msg+`"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body["response"]
	}

	assert.Contains(t, chat("pesan 2 laptop"), "TOTAL: Rp 15.000.000")
	assert.Contains(t, chat("iya"), "PEMBAYARAN BERHASIL")
	assert.Equal(t, "Stok laptop saat ini tersedia 3 unit.", chat("cek stok laptop"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/stock?item=laptop", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestInventoryRoutesAreOptional(t *testing.T) {
	app := newTestApp(t, false, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/stock?item=buku", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWebhookRequiresSignature(t *testing.T) {
	form := url.Values{"From": {"whatsapp:+628123"}, "Body": {"halo"}}
	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	resp, err := newTestApp(t, false, false).Test(newReq())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = newTestApp(t, false, true).Test(newReq())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestErrorHandlerReturnsJSON(t *testing.T) {
	app := NewApp("test")
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "teapot")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

