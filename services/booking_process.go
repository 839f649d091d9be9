package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"staydesk/errors"
	"staydesk/models"
	"staydesk/services/logger"
	"staydesk/services/payment"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// BookingProcess là bước thanh toán khác nhau theo kênh đặt phòng
type BookingProcess interface {
	Name() string
	// AuthorizePayment chạy trước khi giữ phòng, trả về Payment cần lưu (nil nếu không có)
	AuthorizePayment(ctx context.Context, stay *StaySnapshot, code string) (*models.Payment, error)
	// Abandon hoàn tác thanh toán khi booking thất bại sau khi đã authorize
	Abandon(ctx context.Context, p *models.Payment)
}

// PartnerBooking: kênh partner/OTA tự thu tiền, không có payment
type PartnerBooking struct{}

func (PartnerBooking) Name() string { return "partner" }

func (PartnerBooking) AuthorizePayment(context.Context, *StaySnapshot, string) (*models.Payment, error) {
	return nil, nil
}

func (PartnerBooking) Abandon(context.Context, *models.Payment) {}

// GuestBooking: guest đã tạo payment intent ở bước checkout
type GuestBooking struct {
	gateway  payment.Gateway
	intentID string
	logger   logger.Logger
}

func NewGuestBooking(gateway payment.Gateway, intentID string, log logger.Logger) *GuestBooking {
	return &GuestBooking{gateway: gateway, intentID: intentID, logger: log}
}

func (g *GuestBooking) Name() string { return "guest" }

// AuthorizePayment kiểm tra intent đã authorize và gắn đúng mã reservation
func (g *GuestBooking) AuthorizePayment(ctx context.Context, stay *StaySnapshot, code string) (*models.Payment, error) {
	intent, err := g.gateway.Retrieve(ctx, g.intentID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodePaymentNotAuthorized, "Could not verify payment. Please try again.", err)
	}
	if !intent.Status.Authorized() {
		return nil, errors.NewAppError(errors.ErrCodePaymentNotAuthorized, "Payment was not authorized. Please try again.", nil)
	}
	if mismatch := intentMismatch(intent, stay, code); mismatch != "" {
		g.logger.Warn("intent %s does not match booking %s: %s", intent.ID, code, mismatch)
		return nil, errors.NewAppError(errors.ErrCodePaymentNotAuthorized, "Payment verification failed. Please restart the booking.", nil)
	}

	paymentType := models.PaymentType(intent.Metadata[payment.MetaPaymentType])
	if paymentType != models.PaymentTypeDeposit && paymentType != models.PaymentTypeFullPayment {
		paymentType = payment.PaymentTypeFor(stay.Property.PaymentMode)
	}
	meta, _ := json.Marshal(intent.Metadata)

	p := &models.Payment{
		PropertyID:  stay.Property.ID,
		Provider:    g.gateway.Name(),
		ProviderRef: intent.ID,
		Type:        paymentType,
		Status:      payment.StatusFromIntent(intent.Status),
		AmountCents: intent.AmountCents,
		Currency:    strings.ToUpper(intent.Currency),
		Metadata:    datatypes.JSON(meta),
	}
	if p.Status == models.PaymentStatusCaptured {
		now := time.Now().UTC()
		p.CapturedAt = &now
	}
	return p, nil
}

// intentMismatch so intent với stay đang đặt; trả về tên field lệch, "" nếu khớp.
// Intent phải được tạo cho đúng property, loại phòng, ngày ở và số tiền.
func intentMismatch(intent *payment.Intent, stay *StaySnapshot, code string) string {
	meta := intent.Metadata
	switch {
	case meta[payment.MetaReservationCode] != code:
		return "reservation code"
	case meta[payment.MetaPropertyID] != stay.Property.ID:
		return "property"
	case meta[payment.MetaRoomTypeID] != stay.RoomType.ID:
		return "room type"
	case meta[payment.MetaCheckIn] != stay.CheckIn || meta[payment.MetaCheckOut] != stay.CheckOut:
		return "dates"
	case meta[payment.MetaTotalCents] != strconv.FormatInt(stay.TotalCents, 10):
		return "total"
	case intent.AmountCents != payment.ChargeAmount(stay.Property, stay.TotalCents):
		return "amount"
	case !strings.EqualFold(intent.Currency, stay.Property.Currency):
		return "currency"
	}
	return ""
}

// Abandon hủy intent chưa capture, hoàn tiền intent đã thu. Lỗi chỉ log.
func (g *GuestBooking) Abandon(ctx context.Context, p *models.Payment) {
	if p == nil {
		return
	}
	var err error
	switch p.Status {
	case models.PaymentStatusRequiresCapture:
		_, err = g.gateway.Cancel(ctx, p.ProviderRef)
	case models.PaymentStatusCaptured:
		_, err = g.gateway.Refund(ctx, p.ProviderRef, nil)
	}
	if err != nil {
		g.logger.Error("abandon payment %s: %v", p.ProviderRef, err)
	}
}
