package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/tokopesan-backend/internal/services"
)

// MessageProcessor turns a user message into the assistant's reply
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, userID, message string) (string, error)
}

// ChatHandler handles text and voice chat requests
type ChatHandler struct {
	assistant   MessageProcessor
	transcriber services.Transcriber // nil when voice input is not configured
	defaultUser string
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant MessageProcessor, transcriber services.Transcriber, defaultUser string) *ChatHandler {
	return &ChatHandler{
		assistant:   assistant,
		transcriber: transcriber,
		defaultUser: defaultUser,
	}
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// Chat processes a text message
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.assistant.ProcessMessage(c.UserContext(), h.userID(req.UserID), req.Message)
	if errors.Is(err, services.ErrEmptyMessage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Pesan tidak boleh kosong",
		})
	}
	if err != nil {
		log.Printf("❌ Error processing chat message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Terjadi kesalahan saat memproses permintaan Anda.",
		})
	}

	return c.JSON(fiber.Map{
		"response": response,
	})
}

// Transcribe converts an uploaded voice note to text and answers it like a chat message
func (h *ChatHandler) Transcribe(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No audio file provided",
		})
	}

	if h.transcriber == nil {
		log.Println("❌ Transcription requested but GROQ_API_KEY is not set")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server configuration error",
		})
	}

	audio, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid audio file",
		})
	}
	defer audio.Close()

	log.Printf("🎙️ Transcribing %s (%d bytes)", file.Filename, file.Size)
	text, err := h.transcriber.Transcribe(c.UserContext(), file.Filename, audio)
	if err != nil {
		log.Printf("❌ Transcription failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal memproses audio",
		})
	}
	text = strings.TrimSpace(text)

	response, err := h.assistant.ProcessMessage(c.UserContext(), h.userID(c.FormValue("user_id")), text)
	if errors.Is(err, services.ErrEmptyMessage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":         "Audio tidak berisi pesan",
			"transcription": text,
		})
	}
	if err != nil {
		log.Printf("❌ Error processing transcribed message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Terjadi kesalahan saat memproses permintaan Anda.",
		})
	}

	return c.JSON(fiber.Map{
		"transcription": text,
		"response":      response,
	})
}

func (h *ChatHandler) userID(requested string) string {
	if id := strings.TrimSpace(requested); id != "" {
		return id
	}
	return h.defaultUser
}
