package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"staydesk/errors"

	"github.com/goccy/go-json"
)

// SignatureHeader là header chứa chữ ký webhook
const SignatureHeader = "X-Webhook-Signature"

// EventType là loại sự kiện webhook được hỗ trợ
type EventType string

const (
	EventIntentSucceeded EventType = "payment_intent.succeeded"
	EventIntentFailed    EventType = "payment_intent.payment_failed"
	EventChargeRefunded  EventType = "charge.refunded"
)

// Event là sự kiện webhook đã kiểm tra. Đúng một trong các field con khác nil.
type Event struct {
	ID        string
	Type      EventType
	Succeeded *IntentSucceededEvent
	Failed    *IntentFailedEvent
	Refunded  *ChargeRefundedEvent
}

type IntentSucceededEvent struct {
	IntentID      string
	ReceivedCents int64
	Metadata      map[string]string
}

type IntentFailedEvent struct {
	IntentID string
	Reason   string
}

type ChargeRefundedEvent struct {
	IntentID      string
	RefundedCents int64
}

type rawEvent struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`
	Data struct {
		Object struct {
			ID               string            `json:"id"`
			PaymentIntent    string            `json:"payment_intent"`
			AmountReceived   int64             `json:"amount_received"`
			AmountRefunded   int64             `json:"amount_refunded"`
			Metadata         map[string]string `json:"metadata"`
			LastPaymentError *struct {
				Message string `json:"message"`
			} `json:"last_payment_error"`
		} `json:"object"`
	} `json:"data"`
}

// Sign trả về chữ ký hex HMAC-SHA256 của body
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature so sánh chữ ký theo thời gian hằng
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// ParseWebhookEvent kiểm tra chữ ký rồi parse body thành Event.
// Loại không hỗ trợ trả về Event với Type nhưng không có payload.
func ParseWebhookEvent(body []byte, signature, secret string) (*Event, error) {
	if !VerifySignature(body, signature, secret) {
		return nil, errors.ErrInvalidSignature
	}

	var raw rawEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}
	if raw.Type == "" {
		return nil, fmt.Errorf("webhook event has no type")
	}

	obj := raw.Data.Object
	event := &Event{ID: raw.ID, Type: raw.Type}
	switch raw.Type {
	case EventIntentSucceeded:
		if obj.ID == "" {
			return nil, fmt.Errorf("%s: missing intent id", raw.Type)
		}
		event.Succeeded = &IntentSucceededEvent{IntentID: obj.ID, ReceivedCents: obj.AmountReceived, Metadata: obj.Metadata}
	case EventIntentFailed:
		if obj.ID == "" {
			return nil, fmt.Errorf("%s: missing intent id", raw.Type)
		}
		reason := ""
		if obj.LastPaymentError != nil {
			reason = obj.LastPaymentError.Message
		}
		event.Failed = &IntentFailedEvent{IntentID: obj.ID, Reason: reason}
	case EventChargeRefunded:
		if obj.PaymentIntent == "" {
			return nil, fmt.Errorf("%s: missing payment_intent", raw.Type)
		}
		event.Refunded = &ChargeRefundedEvent{IntentID: obj.PaymentIntent, RefundedCents: obj.AmountRefunded}
	}
	return event, nil
}

// Known = loại sự kiện có xử lý
func (e *Event) Known() bool {
	return e.Succeeded != nil || e.Failed != nil || e.Refunded != nil
}
