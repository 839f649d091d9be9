package services

import (
	"context"
	"fmt"

	"staydesk/builders"
	"staydesk/constants"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/repository"
	"staydesk/services/logger"
	"staydesk/services/notification"
	"staydesk/validator"
)

// GuestDetails là thông tin guest của một booking
type GuestDetails struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email,max=320"`
	Phone     string `validate:"max=40"`
}

// StayRequest là input của CreateBooking. Property được ưu tiên hơn PropertySlug.
type StayRequest struct {
	Property         *models.Property `validate:"-"`
	PropertySlug     string           `validate:"required_without=Property"`
	RoomTypeID       string           `validate:"required"`
	CheckIn          string           `validate:"required,ymd"`
	CheckOut         string           `validate:"required,ymd"`
	Adults           int              `validate:"min=1,max=10"`
	Children         int              `validate:"min=0,max=10"`
	Channel          models.Channel   `validate:"omitempty,channel"`
	Guest            GuestDetails
	SpecialRequests  string `validate:"max=2000"`
	ConfirmationCode string `validate:"omitempty"`
}

// BookingResult là kết quả booking thành công
type BookingResult struct {
	Reservation      *models.Reservation
	ConfirmationCode string
	TotalCents       int64
	Currency         string
	Nights           int
	Payment          *models.Payment
}

type BookingService struct {
	availability *AvailabilityService
	inventory    repository.InventoryRepository
	reservations repository.ReservationRepository
	codes        *CodeGenerator
	publisher    notification.Publisher
	logger       logger.Logger
}

type BookingServiceOptions struct {
	Availability *AvailabilityService
	Inventory    repository.InventoryRepository
	Reservations repository.ReservationRepository
	Codes        *CodeGenerator
	Publisher    notification.Publisher
	Logger       logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.Publisher == nil {
		opts.Publisher = notification.NopPublisher{}
	}
	if opts.Codes == nil {
		opts.Codes = NewCodeGenerator(opts.Reservations)
	}
	return &BookingService{
		availability: opts.Availability,
		inventory:    opts.Inventory,
		reservations: opts.Reservations,
		codes:        opts.Codes,
		publisher:    opts.Publisher,
		logger:       opts.Logger,
	}
}

func unexpected(err error) error {
	return errors.NewAppError(errors.ErrCodeUnexpected, constants.MsgUnexpected, err)
}

// CreateBooking kiểm tra, giữ phòng trên ledger rồi ghi reservation.
// Ledger là nơi duy nhất quyết định ai lấy được unit cuối cùng; mọi lỗi sau
// khi đã giữ phòng đều trả lại đúng các đêm đã giữ.
func (s *BookingService) CreateBooking(ctx context.Context, req StayRequest, process BookingProcess) (*BookingResult, error) {
	if process == nil {
		process = PartnerBooking{}
	}

	// 1. validate
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if err := validator.ValidateStay(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}

	// 2. property + room type
	property := req.Property
	if property == nil {
		p, err := s.availability.ResolveProperty(ctx, req.PropertySlug)
		if err != nil {
			return nil, err
		}
		property = p
	}

	// 3. snapshot
	stay, err := s.availability.CheckStay(ctx, property, req.RoomTypeID, req.CheckIn, req.CheckOut)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, unexpected(err)
	}
	if err := validator.ValidateOccupancy(stay.RoomType, req.Adults, req.Children); err != nil {
		return nil, err
	}
	if err := stay.Unavailable(); err != nil {
		if errors.Is(err, errors.ErrOutsideInventoryWindow) {
			s.logger.Warn("booking %s %s..%s: %v", stay.RoomType.ID, req.CheckIn, req.CheckOut, errors.GetAppError(err).Err)
		}
		return nil, err
	}

	// 4. confirmation code
	code, err := s.confirmationCode(ctx, req.ConfirmationCode)
	if err != nil {
		return nil, err
	}

	// 5. thanh toán (guest flow)
	pay, err := process.AuthorizePayment(ctx, stay, code)
	if err != nil {
		return nil, err
	}

	// 6. giữ phòng từng đêm
	outcome, err := s.inventory.Reserve(ctx, property.ID, stay.RoomType.ID, stay.Nights)
	if err != nil {
		process.Abandon(context.WithoutCancel(ctx), pay)
		return nil, unexpected(fmt.Errorf("reserve inventory: %w", err))
	}
	if !outcome.Complete() {
		s.compensate(ctx, property.ID, stay.RoomType.ID, outcome.ReservedDates())
		process.Abandon(context.WithoutCancel(ctx), pay)
		s.logger.Info("booking %s %s..%s lost the race for the last unit", stay.RoomType.ID, req.CheckIn, req.CheckOut)
		return nil, errors.NewAppError(errors.ErrCodeUnavailable, constants.MsgUnavailable, errors.ErrRaceLost)
	}

	// 7. ghi reservation
	reservation := builders.NewReservationBuilder().
		ForProperty(property).
		WithCode(code).
		WithStay(req.CheckIn, req.CheckOut, len(stay.Nights)).
		WithParty(req.Adults, req.Children).
		WithChannel(req.Channel).
		WithTotal(stay.TotalCents).
		WithSpecialRequests(req.SpecialRequests).
		WithRoom(stay.RoomType, stay.RatePerNightCents()).
		Build()
	rooms := reservation.Rooms
	reservation.Rooms = nil

	saved, err := s.reservations.CreateRecords(ctx, repository.BookingRecords{
		Guest:       builders.NewGuest(property.ID, req.Guest.FirstName, req.Guest.LastName, req.Guest.Email, req.Guest.Phone),
		Reservation: reservation,
		Rooms:       rooms,
		Payment:     pay,
	})
	if err != nil {
		// 8. bù ledger với context không bị hủy theo request
		s.compensate(ctx, property.ID, stay.RoomType.ID, stay.Nights)
		process.Abandon(context.WithoutCancel(ctx), pay)
		s.logger.Error("booking %s: write records: %v", code, err)
		return nil, unexpected(err)
	}

	// 9. side effects sau commit
	s.availability.InvalidateProperty(ctx, property.ID)
	saved.Property = property
	for i := range saved.Rooms {
		saved.Rooms[i].RoomType = stay.RoomType
	}
	var paid int64
	paymentType := models.PaymentTypeFullPayment
	if pay != nil {
		paid, paymentType = pay.AmountCents, pay.Type
	}
	s.publisher.Publish(notification.NewBookingConfirmed(saved, paid, paymentType))

	s.logger.Info("booking %s confirmed via %s: %s %s..%s", code, process.Name(), stay.RoomType.ID, req.CheckIn, req.CheckOut)
	return &BookingResult{
		Reservation:      saved,
		ConfirmationCode: code,
		TotalCents:       saved.TotalCents,
		Currency:         saved.Currency,
		Nights:           saved.Nights,
		Payment:          pay,
	}, nil
}

// confirmationCode dùng mã sinh sẵn (guest flow) hoặc sinh mã mới
func (s *BookingService) confirmationCode(ctx context.Context, preset string) (string, error) {
	if preset == "" {
		code, err := s.codes.Generate(ctx)
		if err != nil {
			if errors.Is(err, errors.ErrCodeSpaceExhausted) {
				return "", errors.NewAppError(errors.ErrCodeCodeGenerationFailed, constants.MsgUnexpected, err)
			}
			return "", unexpected(err)
		}
		return code, nil
	}

	if !IsConfirmationCode(preset) {
		return "", errors.NewAppError(errors.ErrCodePaymentNotAuthorized, "Payment verification failed. Please restart the booking.", nil)
	}
	exists, err := s.reservations.CodeExists(ctx, preset)
	if err != nil {
		return "", unexpected(err)
	}
	if exists {
		return "", errors.NewAppError(errors.ErrCodeInvalidRequest, "This booking has already been completed.", nil)
	}
	return preset, nil
}

// compensate trả lại các đêm đã giữ; lỗi được log, không retry
func (s *BookingService) compensate(ctx context.Context, propertyID, roomTypeID string, nights []string) {
	if len(nights) == 0 {
		return
	}
	if err := s.inventory.Unreserve(context.WithoutCancel(ctx), propertyID, roomTypeID, nights); err != nil {
		s.logger.Error("compensate %s %v: %v", roomTypeID, nights, err)
	}
}
