package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrTwilioNotConfigured is returned when WhatsApp credentials are missing
var ErrTwilioNotConfigured = errors.New("missing Twilio credentials")

// whatsAppBodyLimit is Twilio's maximum body length for one WhatsApp message
const whatsAppBodyLimit = 1600

// MessageSender delivers an assistant reply to a WhatsApp user
type MessageSender interface {
	SendWhatsAppMessage(to string, message string) error
}

type TwilioService struct {
	client *twilio.RestClient
	from   string // e.g. "whatsapp:+14155238886"
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(accountSid, authToken, from string) (*TwilioService, error) {
	if accountSid == "" || authToken == "" || from == "" {
		return nil, ErrTwilioNotConfigured
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioService{
		client: client,
		from:   withWhatsAppPrefix(from),
	}, nil
}

// SendWhatsAppMessage sends a WhatsApp message via Twilio, splitting receipts
// longer than one message allows
func (t *TwilioService) SendWhatsAppMessage(to string, message string) error {
	for _, part := range splitMessage(message, whatsAppBodyLimit) {
		params := &twilioApi.CreateMessageParams{}
		params.SetFrom(t.from)
		params.SetTo(withWhatsAppPrefix(to))
		params.SetBody(part)

		resp, err := t.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("❌ Failed to send WhatsApp message: %v", err)
			return err
		}
		if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
			return fmt.Errorf("twilio error %d", *resp.ErrorCode)
		}
		if resp.Sid != nil {
			log.Printf("✅ WhatsApp message sent! SID: %s", *resp.Sid)
		}
	}
	return nil
}

func withWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

// splitMessage cuts text into chunks of at most limit runes, preferring line breaks
func splitMessage(text string, limit int) []string {
	var parts []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	return append(parts, string(runes))
}
