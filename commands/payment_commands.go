package commands

import (
	"context"
	"time"

	"staydesk/errors"
	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/payment"

	"gorm.io/gorm"
)

// PaymentCommand là thao tác ghi sinh ra từ một sự kiện webhook
type PaymentCommand interface {
	Execute(ctx context.Context) error
}

// Repos gom các repository mà command cần, mọi ghi chạy trong một transaction
type Repos struct {
	DB           *gorm.DB
	Payments     repository.PaymentRepository
	Reservations repository.ReservationRepository
}

// NewWebhookCommand chọn command theo biến thể sự kiện, nil nếu loại sự kiện không được hỗ trợ
func NewWebhookCommand(event *payment.Event, repos Repos) PaymentCommand {
	switch {
	case event.Succeeded != nil:
		return &IntentSucceededCommand{event: event.Succeeded, repos: repos}
	case event.Failed != nil:
		return &IntentFailedCommand{event: event.Failed, repos: repos}
	case event.Refunded != nil:
		return &ChargeRefundedCommand{event: event.Refunded, repos: repos}
	}
	return nil
}

// findPayment trả về nil nếu intent chưa gắn với payment nào (booking chưa được tạo)
func findPayment(ctx context.Context, payments repository.PaymentRepository, intentID string) (*models.Payment, error) {
	p, err := payments.FindByProviderRef(ctx, intentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// IntentSucceededCommand đánh dấu payment đã thu và xác nhận reservation đang pending
type IntentSucceededCommand struct {
	event *payment.IntentSucceededEvent
	repos Repos
}

func (c *IntentSucceededCommand) Execute(ctx context.Context) error {
	return c.repos.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := c.repos.Payments.WithTx(tx)
		p, err := findPayment(ctx, payments, c.event.IntentID)
		if err != nil || p == nil {
			return err
		}
		if p.Status != models.PaymentStatusCaptured && p.Status != models.PaymentStatusRefunded {
			if err := payments.UpdateStatus(ctx, p.ID, models.PaymentStatusCaptured, time.Now().UTC()); err != nil {
				return err
			}
		}

		reservations := c.repos.Reservations.WithTx(tx)
		res, err := reservations.FindByID(ctx, p.ReservationID)
		if err != nil {
			return err
		}
		if res.Status != models.ReservationStatusPending {
			return nil
		}
		if err := models.GetReservationState(res.Status).Confirm(res); err != nil {
			return err
		}
		_, err = reservations.TransitionStatus(ctx, res, models.ReservationStatusPending)
		return err
	})
}

// IntentFailedCommand đánh dấu payment thất bại
type IntentFailedCommand struct {
	event *payment.IntentFailedEvent
	repos Repos
}

func (c *IntentFailedCommand) Execute(ctx context.Context) error {
	p, err := findPayment(ctx, c.repos.Payments, c.event.IntentID)
	if err != nil || p == nil {
		return err
	}
	if p.Status != models.PaymentStatusRequiresCapture {
		return nil
	}
	return c.repos.Payments.UpdateStatus(ctx, p.ID, models.PaymentStatusFailed, time.Now().UTC())
}

// ChargeRefundedCommand đánh dấu payment đã hoàn tiền
type ChargeRefundedCommand struct {
	event *payment.ChargeRefundedEvent
	repos Repos
}

func (c *ChargeRefundedCommand) Execute(ctx context.Context) error {
	p, err := findPayment(ctx, c.repos.Payments, c.event.IntentID)
	if err != nil || p == nil {
		return err
	}
	if p.Status == models.PaymentStatusRefunded {
		return nil
	}
	return c.repos.Payments.UpdateStatus(ctx, p.ID, models.PaymentStatusRefunded, time.Now().UTC())
}
