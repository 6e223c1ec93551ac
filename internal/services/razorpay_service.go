package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService verifies online school payments before they enter the
// review queue. When credentials are not configured the service is nil
// and online payments are recorded unverified with a log warning.
type RazorpayService struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(keyID, keySecret, webhookSecret string) *RazorpayService {
	if keyID == "" || keySecret == "" {
		log.Println("[Razorpay] Credentials not configured, online payment verification disabled")
		return nil
	}
	return &RazorpayService{
		client:        razorpay.NewClient(keyID, keySecret),
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

// CreateOrder opens a Razorpay order for a school payment. Amounts are
// rupees in, paise out.
func (s *RazorpayService) CreateOrder(amount float64, schoolName string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("razorpay not configured")
	}

	order, err := s.client.Order.Create(map[string]interface{}{
		"amount":   int(amount * 100),
		"currency": "INR",
		"receipt":  fmt.Sprintf("rcpt_%d", time.Now().Unix()),
		"notes": map[string]interface{}{
			"school_name": schoolName,
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return "", fmt.Errorf("razorpay returned no order id")
	}
	return orderID, nil
}

// VerifyPayment confirms a captured payment belongs to the given order.
// signature, when present, is checked with HMAC first; the payment is
// then fetched so a forged order/payment pair cannot slip through.
func (s *RazorpayService) VerifyPayment(orderID, paymentID, signature string) error {
	if s == nil {
		log.Printf("[Razorpay] Skipping verification for payment %s (not configured)", paymentID)
		return nil
	}

	if signature != "" && !s.VerifySignature(orderID, paymentID, signature) {
		return fmt.Errorf("invalid payment signature")
	}

	payment, err := s.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment %s: %w", paymentID, err)
	}

	if got, _ := payment["order_id"].(string); got != orderID {
		return fmt.Errorf("payment %s does not belong to order %s", paymentID, orderID)
	}
	status, _ := payment["status"].(string)
	if status != "captured" && status != "authorized" {
		return fmt.Errorf("payment %s is %s, not captured", paymentID, status)
	}
	return nil
}

// VerifySignature checks the checkout callback signature
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	if s == nil || s.keySecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks a webhook body signature. Verification is
// skipped when no webhook secret is configured.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s == nil {
		return false
	}
	if s.webhookSecret == "" {
		return true
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
