package middleware

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthToken = "12345"

// sign computes X-Twilio-Signature the way Twilio does for form posts
func sign(token, fullURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := fullURL
	for _, k := range keys {
		data += k + form.Get(k)
	}
	h := hmac.New(sha1.New, []byte(token))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func newSignedApp(token string) *fiber.App {
	app := fiber.New()
	app.Post("/webhook/whatsapp", ValidateTwilioSignature(token), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func webhookRequest(target string, form url.Values, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if signature != "" {
		req.Header.Set("X-Twilio-Signature", signature)
	}
	return req
}

func TestGetFullURL(t *testing.T) {
	var got string
	app := fiber.New()
	app.Post("/webhook/whatsapp", func(c *fiber.Ctx) error {
		got = getFullURL(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(webhookRequest("http://example.com/webhook/whatsapp?src=wa", url.Values{}, ""))
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/webhook/whatsapp?src=wa", got)

	req := webhookRequest("http://example.com/webhook/whatsapp", url.Values{}, "")
	req.Header.Set("X-Forwarded-Proto", "https")
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/webhook/whatsapp", got)
}

func TestValidateTwilioSignature(t *testing.T) {
	form := url.Values{"From": {"whatsapp:+628123"}, "Body": {"cek stok buku"}}
	valid := sign(testAuthToken, "http://example.com/webhook/whatsapp", form)

	tests := []struct {
		name      string
		token     string
		form      url.Values
		signature string
		want      int
	}{
		{"valid signature", testAuthToken, form, valid, fiber.StatusOK},
		{"missing signature", testAuthToken, form, "", fiber.StatusUnauthorized},
		{"tampered signature", testAuthToken, form, "bm90LXZhbGlk", fiber.StatusUnauthorized},
		{"tampered body", testAuthToken, url.Values{"From": {"whatsapp:+628123"}, "Body": {"pesan 9 laptop"}}, valid, fiber.StatusUnauthorized},
		{"signed with another token", "other", form, valid, fiber.StatusUnauthorized},
		{"no auth token configured", "", form, valid, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := webhookRequest("http://example.com/webhook/whatsapp", tt.form, tt.signature)
			resp, err := newSignedApp(tt.token).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestValidateTwilioSignatureBehindProxy(t *testing.T) {
	form := url.Values{"From": {"whatsapp:+628123"}, "Body": {"halo"}}
	req := webhookRequest("http://example.com/webhook/whatsapp", form, sign(testAuthToken, "https://example.com/webhook/whatsapp", form))
	req.Header.Set("X-Forwarded-Proto", "https")

	resp, err := newSignedApp(testAuthToken).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
