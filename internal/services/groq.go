package services

import (
	"context"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// DefaultGroqBaseURL is Groq's OpenAI compatible endpoint
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqConfig configures the oracle and transcription client
type GroqConfig struct {
	APIKey             string
	BaseURL            string
	ChatModel          string
	Temperature        float32
	MaxTokens          int
	Timeout            time.Duration
	TranscriptionModel string
	Language           string
}

func newGroqClient(cfg GroqConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = DefaultGroqBaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// GroqOracle is the chat completion CompletionOracle
type GroqOracle struct {
	client *openai.Client
	cfg    GroqConfig
}

// NewGroqOracle creates the oracle
func NewGroqOracle(cfg GroqConfig) *GroqOracle {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GroqOracle{client: newGroqClient(cfg), cfg: cfg}
}

func (g *GroqOracle) Complete(ctx context.Context, turns []models.ConversationTurn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, t := range turns {
		messages[i] = openai.ChatCompletionMessage{Role: t.Role, Content: t.Content}
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.ChatModel,
		Messages:    messages,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcriber turns an audio upload into text
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// GroqTranscriber uses Groq's Whisper endpoint
type GroqTranscriber struct {
	client *openai.Client
	cfg    GroqConfig
}

// NewGroqTranscriber creates the transcriber
func NewGroqTranscriber(cfg GroqConfig) *GroqTranscriber {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &GroqTranscriber{client: newGroqClient(cfg), cfg: cfg}
}

func (g *GroqTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    g.cfg.TranscriptionModel,
		FilePath: filename,
		Reader:   audio,
		Language: g.cfg.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return resp.Text, nil
}
