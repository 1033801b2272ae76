package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/tokopesan-backend/internal/services"
)

const (
	msgWhatsAppFailure = "❌ Mohon maaf, terjadi kesalahan. Silakan coba lagi."
	msgWhatsAppNoVoice = "Mohon maaf, pesan suara belum dapat diproses melalui WhatsApp. Silakan ketik pesan Anda. 🙏"
)

// WhatsAppHandler handles WhatsApp webhook requests
type WhatsAppHandler struct {
	assistant MessageProcessor
	sender    services.MessageSender // nil when Twilio is not configured
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(assistant MessageProcessor, sender services.MessageSender) *WhatsAppHandler {
	return &WhatsAppHandler{
		assistant: assistant,
		sender:    sender,
	}
}

// TwilioWebhookPayload represents incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid        string `form:"MessageSid"`
	AccountSid        string `form:"AccountSid"`
	From              string `form:"From"` // whatsapp:+6281234567890
	To                string `form:"To"`
	Body              string `form:"Body"`
	NumMedia          string `form:"NumMedia"`
	MediaUrl0         string `form:"MediaUrl0"`
	MediaContentType0 string `form:"MediaContentType0"`
}

// HandleWebhook processes incoming WhatsApp messages. The sender's phone number
// is the session key.
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	from := strings.TrimPrefix(payload.From, "whatsapp:")
	if from == "" {
		// status callbacks carry no sender
		return c.SendStatus(fiber.StatusOK)
	}
	log.Printf("📱 WhatsApp Message from %s: %s", from, payload.Body)

	var response string
	switch {
	case strings.TrimSpace(payload.Body) != "":
		var err error
		response, err = h.assistant.ProcessMessage(c.UserContext(), from, payload.Body)
		if err != nil && !errors.Is(err, services.ErrEmptyMessage) {
			log.Printf("Error processing message: %v", err)
			response = msgWhatsAppFailure
		}
	case strings.HasPrefix(payload.MediaContentType0, "audio/"):
		response = msgWhatsAppNoVoice
	default:
		return c.SendStatus(fiber.StatusOK)
	}

	if h.sender == nil {
		log.Printf("📤 Response (not sent - Twilio not configured): %s", response)
		return c.SendStatus(fiber.StatusOK)
	}
	if err := h.sender.SendWhatsAppMessage(from, response); err != nil {
		log.Printf("❌ Failed to send WhatsApp response: %v", err)
	} else {
		log.Printf("✅ Response sent to %s", from)
	}

	// Acknowledge webhook receipt
	return c.SendStatus(fiber.StatusOK)
}
