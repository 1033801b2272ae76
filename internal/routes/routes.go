package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Ananth-NQI/tokopesan-backend/internal/handlers"
	"github.com/Ananth-NQI/tokopesan-backend/internal/middleware"
)

// Handlers bundles everything SetupRoutes mounts
type Handlers struct {
	Chat      *handlers.ChatHandler
	WhatsApp  *handlers.WhatsAppHandler
	Health    *handlers.HealthHandler
	Inventory *handlers.InventoryHandler // nil unless this process serves the inventory

	TwilioAuthToken string
	SkipSignature   bool // local development behind ngrok
}

// NewApp creates the fiber app with the common error handler and middleware
func NewApp(appName string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   appName,
		BodyLimit: 25 * 1024 * 1024, // voice notes
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	return app
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, h Handlers) {
	endpoints := fiber.Map{
		"health":     "/health",
		"chat":       "/api/chat",
		"transcribe": "/api/transcribe",
		"webhook":    "/webhook/whatsapp",
	}
	if h.Inventory != nil {
		endpoints["stock"] = "/api/v1/stock?item="
		endpoints["new_order"] = "/api/v1/new-order"
		endpoints["products"] = "/api/v1/products"
		endpoints["orders"] = "/api/v1/orders"
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Welcome to TokoPesan Assistant!",
			"endpoints": endpoints,
		})
	})
	app.Get("/health", h.Health.Check)

	api := app.Group("/api")
	api.Post("/chat", h.Chat.Chat)
	api.Post("/transcribe", h.Chat.Transcribe)

	if h.Inventory != nil {
		v1 := api.Group("/v1")
		v1.Get("/stock", h.Inventory.CheckStock)
		v1.Post("/new-order", h.Inventory.CreateOrder)
		v1.Get("/products", h.Inventory.ListProducts)
		v1.Get("/orders", h.Inventory.ListOrders)
	}

	webhooks := app.Group("/webhook")
	if h.SkipSignature {
		log.Println("⚠️  WhatsApp webhook validation DISABLED")
		webhooks.Post("/whatsapp", h.WhatsApp.HandleWebhook)
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(h.TwilioAuthToken), h.WhatsApp.HandleWebhook)
	}
}
