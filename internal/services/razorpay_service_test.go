package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signHMAC(secret, message string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}

func TestNewRazorpayServiceUnconfigured(t *testing.T) {
	if svc := NewRazorpayService("", "", ""); svc != nil {
		t.Error("NewRazorpayService with no credentials should return nil")
	}
	if svc := NewRazorpayService("key_id", "", ""); svc != nil {
		t.Error("NewRazorpayService without secret should return nil")
	}
}

func TestVerifySignature(t *testing.T) {
	svc := &RazorpayService{keySecret: "test_secret"}
	orderID, paymentID := "order_123", "pay_456"
	good := signHMAC("test_secret", orderID+"|"+paymentID)

	if !svc.VerifySignature(orderID, paymentID, good) {
		t.Error("VerifySignature rejected a valid signature")
	}
	if svc.VerifySignature(orderID, paymentID, signHMAC("other_secret", orderID+"|"+paymentID)) {
		t.Error("VerifySignature accepted a signature from another secret")
	}
	if svc.VerifySignature(orderID, "pay_999", good) {
		t.Error("VerifySignature accepted a signature for a different payment")
	}

	var nilSvc *RazorpayService
	if nilSvc.VerifySignature(orderID, paymentID, good) {
		t.Error("nil service must never verify signatures")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)

	svc := &RazorpayService{webhookSecret: "hook_secret"}
	if !svc.VerifyWebhookSignature(body, signHMAC("hook_secret", string(body))) {
		t.Error("VerifyWebhookSignature rejected a valid signature")
	}
	if svc.VerifyWebhookSignature(body, "bogus") {
		t.Error("VerifyWebhookSignature accepted a bogus signature")
	}

	// Without a webhook secret the check is skipped, not failed
	open := &RazorpayService{}
	if !open.VerifyWebhookSignature(body, "anything") {
		t.Error("webhook verification should pass when no secret is configured")
	}

	var nilSvc *RazorpayService
	if nilSvc.VerifyWebhookSignature(body, "anything") {
		t.Error("nil service must reject webhook signatures")
	}
}

func TestNilRazorpayVerifyPayment(t *testing.T) {
	var svc *RazorpayService
	if err := svc.VerifyPayment("order_1", "pay_1", ""); err != nil {
		t.Errorf("nil service VerifyPayment should be a no-op, got %v", err)
	}
}
