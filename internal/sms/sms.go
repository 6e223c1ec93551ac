package sms

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider sends transactional SMS notifications (DC completion, leave
// decisions). Implementations must be safe for concurrent use.
type Provider interface {
	SendSMS(phone, message string) error
}

// Fast2SMSProvider implements Provider for Fast2SMS (India), quick route.
type Fast2SMSProvider struct {
	APIKey string
	client *http.Client
}

func NewFast2SMSProvider(apiKey string) *Fast2SMSProvider {
	return &Fast2SMSProvider{
		APIKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Fast2SMSProvider) SendSMS(phone, message string) error {
	apiURL := fmt.Sprintf(
		"https://www.fast2sms.com/dev/bulkV2?authorization=%s&route=q&message=%s&language=english&flash=0&numbers=%s",
		url.QueryEscape(s.APIKey),
		url.QueryEscape(message),
		url.QueryEscape(phone),
	)

	resp, err := s.client.Get(apiURL)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API error (status %d): %s", resp.StatusCode, string(body))
	}
	if strings.Contains(string(body), `"return":false`) {
		return fmt.Errorf("SMS API error: %s", string(body))
	}
	return nil
}

// MockProvider prints messages to stdout instead of sending (local dev).
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (s *MockProvider) SendSMS(phone, message string) error {
	fmt.Printf("\n========== MOCK SMS ==========\n")
	fmt.Printf("To: %s\n", phone)
	fmt.Printf("Message: %s\n", message)
	fmt.Printf("==============================\n\n")
	return nil
}
