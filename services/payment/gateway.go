// Package payment chứa gateway thanh toán, cách tính tiền cọc và webhook.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"staydesk/errors"
	"staydesk/models"
)

// IntentStatus là trạng thái payment intent phía provider
type IntentStatus string

const (
	IntentRequiresCapture IntentStatus = "requires_capture"
	IntentSucceeded       IntentStatus = "succeeded"
	IntentCancelled       IntentStatus = "canceled"
	IntentFailed          IntentStatus = "failed"
)

// Authorized = đã giữ tiền hoặc đã thu
func (s IntentStatus) Authorized() bool {
	return s == IntentSucceeded || s == IntentRequiresCapture
}

// IntentParams là input tạo intent
type IntentParams struct {
	AmountCents   int64
	Currency      string
	ManualCapture bool
	Metadata      map[string]string
}

// Intent là payment intent phía provider
type Intent struct {
	ID            string            `json:"id"`
	ClientSecret  string            `json:"clientSecret"`
	AmountCents   int64             `json:"amountCents"`
	ReceivedCents int64             `json:"receivedCents"`
	RefundedCents int64             `json:"refundedCents"`
	Currency      string            `json:"currency"`
	Status        IntentStatus      `json:"status"`
	ManualCapture bool              `json:"manualCapture"`
	Metadata      map[string]string `json:"metadata"`
}

// Gateway là khả năng thanh toán bên ngoài
type Gateway interface {
	Name() string
	CreateIntent(ctx context.Context, params IntentParams) (*Intent, error)
	Retrieve(ctx context.Context, intentID string) (*Intent, error)
	Capture(ctx context.Context, intentID string) (*Intent, error)
	// Refund hoàn tiền, amountCents nil = hoàn toàn bộ
	Refund(ctx context.Context, intentID string, amountCents *int64) (*Intent, error)
	Cancel(ctx context.Context, intentID string) (*Intent, error)
}

// Metadata keys gắn trên intent
const (
	MetaReservationCode = "reservation_code"
	MetaPropertyID      = "property_id"
	MetaRoomTypeID      = "room_type_id"
	MetaPaymentMode     = "payment_mode"
	MetaPaymentType     = "payment_type"
	MetaTotalCents      = "total_amount_cents"
	MetaCheckIn         = "check_in"
	MetaCheckOut        = "check_out"
)

// ManualGateway giữ intent trong bộ nhớ, cho property thu tiền tại quầy.
// Intent được authorize ngay khi tạo.
type ManualGateway struct {
	mu      sync.Mutex
	intents map[string]*Intent
}

func NewManualGateway() *ManualGateway {
	return &ManualGateway{intents: make(map[string]*Intent)}
}

func (g *ManualGateway) Name() string { return "manual" }

func (g *ManualGateway) CreateIntent(ctx context.Context, params IntentParams) (*Intent, error) {
	if params.AmountCents < 0 {
		return nil, fmt.Errorf("amount must not be negative: %d", params.AmountCents)
	}
	id := "pi_" + randomHex(12)
	intent := &Intent{
		ID:            id,
		ClientSecret:  id + "_secret_" + randomHex(8),
		AmountCents:   params.AmountCents,
		Currency:      strings.ToLower(params.Currency),
		ManualCapture: params.ManualCapture,
		Metadata:      copyMeta(params.Metadata),
	}
	if params.ManualCapture {
		intent.Status = IntentRequiresCapture
	} else {
		intent.Status = IntentSucceeded
		intent.ReceivedCents = params.AmountCents
	}

	g.mu.Lock()
	g.intents[id] = intent
	g.mu.Unlock()
	return clone(intent), nil
}

func (g *ManualGateway) Retrieve(ctx context.Context, intentID string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[intentID]
	if !ok {
		return nil, errors.ErrIntentNotFound
	}
	return clone(intent), nil
}

func (g *ManualGateway) Capture(ctx context.Context, intentID string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[intentID]
	if !ok {
		return nil, errors.ErrIntentNotFound
	}
	if intent.Status != IntentRequiresCapture {
		return nil, fmt.Errorf("intent %s cannot be captured in status %s", intentID, intent.Status)
	}
	intent.Status = IntentSucceeded
	intent.ReceivedCents = intent.AmountCents
	return clone(intent), nil
}

func (g *ManualGateway) Refund(ctx context.Context, intentID string, amountCents *int64) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[intentID]
	if !ok {
		return nil, errors.ErrIntentNotFound
	}
	if intent.Status != IntentSucceeded {
		return nil, fmt.Errorf("intent %s cannot be refunded in status %s", intentID, intent.Status)
	}
	refundable := intent.ReceivedCents - intent.RefundedCents
	amount := refundable
	if amountCents != nil {
		amount = *amountCents
	}
	if amount <= 0 || amount > refundable {
		return nil, fmt.Errorf("refund amount %d out of range (refundable %d)", amount, refundable)
	}
	intent.RefundedCents += amount
	return clone(intent), nil
}

func (g *ManualGateway) Cancel(ctx context.Context, intentID string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[intentID]
	if !ok {
		return nil, errors.ErrIntentNotFound
	}
	if intent.Status == IntentSucceeded {
		return nil, fmt.Errorf("intent %s already succeeded", intentID)
	}
	intent.Status = IntentCancelled
	return clone(intent), nil
}

// PaymentTypeFor trả về loại payment theo chế độ của property
func PaymentTypeFor(mode models.PaymentMode) models.PaymentType {
	if mode == models.PaymentModeDepositAtBooking {
		return models.PaymentTypeDeposit
	}
	return models.PaymentTypeFullPayment
}

// StatusFromIntent ánh xạ trạng thái intent sang trạng thái Payment lưu DB
func StatusFromIntent(s IntentStatus) models.PaymentStatus {
	switch s {
	case IntentSucceeded:
		return models.PaymentStatusCaptured
	case IntentRequiresCapture:
		return models.PaymentStatusRequiresCapture
	case IntentCancelled:
		return models.PaymentStatusCancelled
	default:
		return models.PaymentStatusFailed
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

func copyMeta(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clone(i *Intent) *Intent {
	c := *i
	c.Metadata = copyMeta(i.Metadata)
	return &c
}
