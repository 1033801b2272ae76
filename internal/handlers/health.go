package handlers

import "github.com/gofiber/fiber/v2"

// SessionCounter reports how many conversations are in memory
type SessionCounter interface {
	Count() int
}

// HealthStatus describes how the server was wired at startup
type HealthStatus struct {
	Version  string
	Oracle   bool   // fallback uses the language model
	Gateway  string // "http" or "local"
	Storage  string // "memory", "postgres" or "" when inventory is remote
	WhatsApp bool
	Ping     func() error // checks the inventory database, may be nil
}

// HealthHandler handles health check requests
type HealthHandler struct {
	status   HealthStatus
	sessions SessionCounter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(status HealthStatus, sessions SessionCounter) *HealthHandler {
	return &HealthHandler{
		status:   status,
		sessions: sessions,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK
	database := fiber.Map{"configured": h.status.Ping != nil}
	if h.status.Ping != nil {
		if err := h.status.Ping(); err != nil {
			status = "unhealthy"
			statusCode = fiber.StatusServiceUnavailable
			database["error"] = err.Error()
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":   status,
		"service":  "TokoPesan Assistant",
		"version":  h.status.Version,
		"sessions": h.sessions.Count(),
		"services": fiber.Map{
			"oracle":   h.status.Oracle,
			"gateway":  h.status.Gateway,
			"storage":  h.status.Storage,
			"whatsapp": h.status.WhatsApp,
			"database": database,
		},
	})
}
