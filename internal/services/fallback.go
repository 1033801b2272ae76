package services

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// MinOracleResponseLength is the shortest oracle answer kept as is
const MinOracleResponseLength = 10

// CompletionOracle produces a conversational reply for a message window
type CompletionOracle interface {
	Complete(ctx context.Context, turns []models.ConversationTurn) (string, error)
}

// FallbackResponder answers messages no heuristic understood
type FallbackResponder struct {
	oracle     CompletionOracle
	picker     Picker
	prompt     string
	staticHelp string
}

// NewFallbackResponder creates a responder. A nil oracle answers with staticHelp.
func NewFallbackResponder(oracle CompletionOracle, picker Picker, prompt, staticHelp string) *FallbackResponder {
	return &FallbackResponder{oracle: oracle, picker: picker, prompt: prompt, staticHelp: staticHelp}
}

// Respond records the user turn, asks the oracle and records its reply
func (f *FallbackResponder) Respond(ctx context.Context, session *Session, msg string) string {
	session.AddToHistory(models.RoleUser, msg)

	if f.oracle == nil {
		session.AddToHistory(models.RoleAssistant, f.staticHelp)
		return f.staticHelp
	}

	turns := make([]models.ConversationTurn, 0, len(session.History)+1)
	turns = append(turns, models.ConversationTurn{Role: models.RoleSystem, Content: f.prompt})
	turns = append(turns, session.History...)

	reply, err := f.oracle.Complete(ctx, turns)
	if err != nil {
		log.Printf("🤖 Oracle failed for %s: %v", session.UserID, err)
		reply = ""
	}
	reply = f.polish(reply)

	session.AddToHistory(models.RoleAssistant, reply)
	return reply
}

// polish substitutes a clarification for empty answers and greets short bare ones
func (f *FallbackResponder) polish(reply string) string {
	reply = strings.TrimSpace(reply)
	if utf8.RuneCountInString(reply) < MinOracleResponseLength {
		reply = pick(f.picker, clarificationResponses)
	}
	if len(strings.Fields(reply)) < 10 && !strings.ContainsAny(reply, "?!.") {
		reply = pick(f.picker, greetingPrefixes) + " " + reply
	}
	return reply
}
