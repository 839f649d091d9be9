package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staydesk/constants"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/logger"
	"staydesk/services/notification"
	"staydesk/services/payment"
	"staydesk/utils"

	"gorm.io/gorm"
)

type ReservationService struct {
	db           *gorm.DB
	reservations repository.ReservationRepository
	payments     repository.PaymentRepository
	reverser     *InventoryReverser
	availability *AvailabilityService
	reviews      *ReviewService
	gateway      payment.Gateway
	publisher    notification.Publisher
	logger       logger.Logger
	now          func() time.Time
}

type ReservationServiceOptions struct {
	DB           *gorm.DB
	Reservations repository.ReservationRepository
	Payments     repository.PaymentRepository
	Reverser     *InventoryReverser
	Availability *AvailabilityService
	Reviews      *ReviewService
	Gateway      payment.Gateway
	Publisher    notification.Publisher
	Logger       logger.Logger
	Now          func() time.Time
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.Publisher == nil {
		opts.Publisher = notification.NopPublisher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReservationService{
		db:           opts.DB,
		reservations: opts.Reservations,
		payments:     opts.Payments,
		reverser:     opts.Reverser,
		availability: opts.Availability,
		reviews:      opts.Reviews,
		gateway:      opts.Gateway,
		publisher:    opts.Publisher,
		logger:       opts.Logger,
		now:          opts.Now,
	}
}

// action là một bước chuyển trạng thái trên state hiện tại
type action struct {
	name  string
	apply func(state models.ReservationState, r *models.Reservation, at time.Time) error
}

var (
	actionConfirm = action{"confirm", func(s models.ReservationState, r *models.Reservation, _ time.Time) error {
		return s.Confirm(r)
	}}
	actionCheckIn = action{"check in", func(s models.ReservationState, r *models.Reservation, at time.Time) error {
		return s.CheckIn(r, at)
	}}
	actionCheckOut = action{"check out", func(s models.ReservationState, r *models.Reservation, at time.Time) error {
		return s.CheckOut(r, at)
	}}
	actionNoShow = action{"mark no-show", func(s models.ReservationState, r *models.Reservation, _ time.Time) error {
		return s.NoShow(r)
	}}
)

func actionCancel(reason string) action {
	return action{"cancel", func(s models.ReservationState, r *models.Reservation, at time.Time) error {
		return s.Cancel(r, reason, at)
	}}
}

func reservationNotFound(err error) error {
	return errors.NewAppError(errors.ErrCodeNotFound, constants.MsgReservationAbsent, err)
}

// Get tìm reservation theo id; propertyID rỗng = không giới hạn property
func (s *ReservationService) Get(ctx context.Context, propertyID, id string) (*models.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, reservationNotFound(errors.ErrReservationNotFound)
		}
		return nil, unexpected(err)
	}
	if propertyID != "" && res.PropertyID != propertyID {
		return nil, reservationNotFound(errors.ErrReservationNotFound)
	}
	return res, nil
}

// GetByCode tìm reservation theo mã xác nhận trong một property
func (s *ReservationService) GetByCode(ctx context.Context, propertyID, code string) (*models.Reservation, error) {
	res, err := s.reservations.FindByCodeForProperty(ctx, propertyID, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, reservationNotFound(errors.ErrReservationNotFound)
		}
		return nil, unexpected(err)
	}
	return res, nil
}

// Lookup tìm reservation theo mã xác nhận trên mọi property
func (s *ReservationService) Lookup(ctx context.Context, code string) (*models.Reservation, error) {
	res, err := s.reservations.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, reservationNotFound(errors.ErrReservationNotFound)
		}
		return nil, unexpected(err)
	}
	return res, nil
}

// transition áp dụng act lên reservation. Ghi trạng thái có điều kiện theo trạng
// thái đã đọc và, với cancelled/no_show, trả ledger trong cùng transaction.
func (s *ReservationService) transition(ctx context.Context, propertyID, id string, act action) (*models.Reservation, models.ReservationStatus, error) {
	res, err := s.Get(ctx, propertyID, id)
	if err != nil {
		return nil, "", err
	}
	from := res.Status
	if err := act.apply(models.GetReservationState(from), res, s.now().UTC()); err != nil {
		var te *models.TransitionError
		if errors.As(err, &te) {
			return nil, from, errors.NewAppError(errors.ErrCodeInvalidTransition, transitionMessage(te), err)
		}
		return nil, from, unexpected(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.reservations.WithTx(tx).TransitionStatus(ctx, res, from)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrStatusChanged
		}
		if res.Status.ReleasesInventory() {
			return s.reverser.WithTx(tx).Release(ctx, res)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errors.ErrStatusChanged) {
			return nil, from, errors.NewAppError(errors.ErrCodeInvalidTransition,
				"Reservation was updated by another request. Please reload and try again.", err)
		}
		s.logger.Error("%s reservation %s: %v", act.name, res.ConfirmationCode, err)
		return nil, from, unexpected(err)
	}

	if res.Status.ReleasesInventory() {
		s.availability.InvalidateProperty(ctx, res.PropertyID)
	}
	s.logger.Info("reservation %s: %s -> %s", res.ConfirmationCode, from, res.Status)
	return res, from, nil
}

func transitionMessage(te *models.TransitionError) string {
	msg := te.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// Cancel hủy reservation, trả ledger rồi hoàn/hủy payment
func (s *ReservationService) Cancel(ctx context.Context, propertyID, id, reason string) (*models.Reservation, error) {
	res, _, err := s.transition(ctx, propertyID, id, actionCancel(strings.TrimSpace(reason)))
	if err != nil {
		return nil, err
	}
	note := s.settlePayments(ctx, res)
	s.publisher.Publish(notification.NewBookingCancelled(res, res.CancellationReason, note))
	return res, nil
}

// MarkNoShow trả ledger, giữ nguyên payment
func (s *ReservationService) MarkNoShow(ctx context.Context, propertyID, id string) (*models.Reservation, error) {
	res, from, err := s.transition(ctx, propertyID, id, actionNoShow)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(notification.NewStatusChanged(res, from))
	return res, nil
}

func (s *ReservationService) Confirm(ctx context.Context, propertyID, id string) (*models.Reservation, error) {
	res, from, err := s.transition(ctx, propertyID, id, actionConfirm)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(notification.NewStatusChanged(res, from))
	return res, nil
}

func (s *ReservationService) CheckIn(ctx context.Context, propertyID, id string) (*models.Reservation, error) {
	res, from, err := s.transition(ctx, propertyID, id, actionCheckIn)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(notification.NewStatusChanged(res, from))
	return res, nil
}

// CheckOut kết thúc stay, phát hành link review rồi gửi email sau lưu trú.
// Lỗi phát hành token chỉ log, email vẫn gửi không kèm link.
func (s *ReservationService) CheckOut(ctx context.Context, propertyID, id string) (*models.Reservation, error) {
	res, from, err := s.transition(ctx, propertyID, id, actionCheckOut)
	if err != nil {
		return nil, err
	}
	var reviewToken string
	if s.reviews != nil {
		token, err := s.reviews.IssueToken(ctx, res)
		if err != nil {
			s.logger.Error("issue review token for %s: %v", res.ConfirmationCode, err)
		} else {
			reviewToken = token.Token
		}
	}
	s.publisher.Publish(notification.NewStatusChanged(res, from))
	s.publisher.Publish(notification.NewPostStay(res, reviewToken))
	return res, nil
}

// settlePayments hoàn tiền payment đã thu, hủy payment đang giữ. Lỗi chỉ log.
func (s *ReservationService) settlePayments(ctx context.Context, res *models.Reservation) string {
	ctx = context.WithoutCancel(ctx)
	var note string
	for i := range res.Payments {
		p := &res.Payments[i]
		var next models.PaymentStatus
		switch p.Status {
		case models.PaymentStatusCaptured:
			if _, err := s.gateway.Refund(ctx, p.ProviderRef, nil); err != nil {
				s.logger.Error("refund payment %s: %v", p.ProviderRef, err)
				continue
			}
			next = models.PaymentStatusRefunded
			note = fmt.Sprintf("A refund of %s has been initiated to your original payment method.",
				notification.FormatMoney(p.AmountCents, p.Currency))
		case models.PaymentStatusRequiresCapture:
			if _, err := s.gateway.Cancel(ctx, p.ProviderRef); err != nil {
				s.logger.Error("cancel payment %s: %v", p.ProviderRef, err)
				continue
			}
			next = models.PaymentStatusCancelled
		default:
			continue
		}
		at := s.now().UTC()
		if err := s.payments.UpdateStatus(ctx, p.ID, next, at); err != nil {
			s.logger.Error("update payment %s: %v", p.ID, err)
			continue
		}
		p.Status = next
		if next == models.PaymentStatusRefunded {
			p.RefundedAt = &at
		}
	}
	return note
}

func (s *ReservationService) findPayment(res *models.Reservation, status models.PaymentStatus) (*models.Payment, error) {
	for i := range res.Payments {
		if res.Payments[i].Status == status {
			return &res.Payments[i], nil
		}
	}
	return nil, errors.NewAppError(errors.ErrCodeInvalidTransition,
		fmt.Sprintf("Reservation has no %s payment.", strings.ReplaceAll(string(status), "_", " ")), errors.ErrPaymentNotFound)
}

// CapturePayment thu tiền cọc đang giữ
func (s *ReservationService) CapturePayment(ctx context.Context, propertyID, id string) (*models.Payment, error) {
	res, err := s.Get(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	p, err := s.findPayment(res, models.PaymentStatusRequiresCapture)
	if err != nil {
		return nil, err
	}
	if _, err := s.gateway.Capture(ctx, p.ProviderRef); err != nil {
		s.logger.Error("capture payment %s: %v", p.ProviderRef, err)
		return nil, errors.NewAppError(errors.ErrCodeUnexpected, "Capture failed.", err)
	}
	at := s.now().UTC()
	if err := s.payments.UpdateStatus(ctx, p.ID, models.PaymentStatusCaptured, at); err != nil {
		return nil, unexpected(err)
	}
	p.Status = models.PaymentStatusCaptured
	p.CapturedAt = &at
	return p, nil
}

// RefundPayment hoàn một phần hoặc toàn bộ payment đã thu
func (s *ReservationService) RefundPayment(ctx context.Context, propertyID, id string, amountCents *int64) (*models.Payment, error) {
	res, err := s.Get(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	p, err := s.findPayment(res, models.PaymentStatusCaptured)
	if err != nil {
		return nil, err
	}
	if amountCents != nil && (*amountCents <= 0 || *amountCents > p.AmountCents) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "Refund amount is out of range.", nil)
	}
	if _, err := s.gateway.Refund(ctx, p.ProviderRef, amountCents); err != nil {
		s.logger.Error("refund payment %s: %v", p.ProviderRef, err)
		return nil, errors.NewAppError(errors.ErrCodeUnexpected, "Refund failed.", err)
	}
	at := s.now().UTC()
	if err := s.payments.UpdateStatus(ctx, p.ID, models.PaymentStatusRefunded, at); err != nil {
		return nil, unexpected(err)
	}
	p.Status = models.PaymentStatusRefunded
	p.RefundedAt = &at
	return p, nil
}

// SendPreArrivals phát PreArrival cho khách check-in vào ngày sau day
func (s *ReservationService) SendPreArrivals(ctx context.Context, day string) (int, error) {
	tomorrow, err := utils.AddDays(day, 1)
	if err != nil {
		return 0, err
	}
	arrivals, err := s.reservations.ListArrivals(ctx, tomorrow, []models.ReservationStatus{
		models.ReservationStatusConfirmed,
		models.ReservationStatusCheckedIn,
	})
	if err != nil {
		return 0, err
	}
	queued := 0
	for i := range arrivals {
		if s.publisher.Publish(notification.NewPreArrival(&arrivals[i])) {
			queued++
		}
	}
	s.logger.Info("pre-arrival: %d/%d reservations queued for %s", queued, len(arrivals), tomorrow)
	return queued, nil
}
