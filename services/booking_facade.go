package services

import (
	"context"
	"strconv"
	"strings"

	"staydesk/dto"
	"staydesk/errors"
	"staydesk/models"
	"staydesk/services/logger"
	"staydesk/services/payment"
	"staydesk/validator"
)

// BookingFacade gom các bước của guest flow: checkout rồi đặt phòng
type BookingFacade struct {
	availability *AvailabilityService
	bookings     *BookingService
	gateway      payment.Gateway
	logger       logger.Logger
}

// NewBookingFacade tạo instance mới của BookingFacade
func NewBookingFacade(availability *AvailabilityService, bookings *BookingService, gateway payment.Gateway, log logger.Logger) *BookingFacade {
	return &BookingFacade{
		availability: availability,
		bookings:     bookings,
		gateway:      gateway,
		logger:       log,
	}
}

// PrepareCheckout tính tổng tiền, sinh sẵn mã reservation và tạo payment intent
// mang mã đó trong metadata
func (f *BookingFacade) PrepareCheckout(ctx context.Context, slug string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	property, err := f.availability.ResolveProperty(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateGuests(req.Adults, req.Children); err != nil {
		return nil, err
	}
	stay, err := f.availability.CheckStay(ctx, property, req.RoomTypeID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateOccupancy(stay.RoomType, req.Adults, req.Children); err != nil {
		return nil, err
	}
	if err := stay.Unavailable(); err != nil {
		return nil, err
	}

	code, err := f.bookings.confirmationCode(ctx, "")
	if err != nil {
		return nil, err
	}

	charged := payment.ChargeAmount(property, stay.TotalCents)
	paymentType := payment.PaymentTypeFor(property.PaymentMode)
	intent, err := f.gateway.CreateIntent(ctx, payment.IntentParams{
		AmountCents:   charged,
		Currency:      property.Currency,
		ManualCapture: paymentType == models.PaymentTypeDeposit,
		Metadata: map[string]string{
			payment.MetaReservationCode: code,
			payment.MetaPropertyID:      property.ID,
			payment.MetaRoomTypeID:      stay.RoomType.ID,
			payment.MetaPaymentMode:     string(property.PaymentMode),
			payment.MetaPaymentType:     string(paymentType),
			payment.MetaTotalCents:      strconv.FormatInt(stay.TotalCents, 10),
			payment.MetaCheckIn:         stay.CheckIn,
			payment.MetaCheckOut:        stay.CheckOut,
		},
	})
	if err != nil {
		f.logger.Error("create payment intent for %s: %v", code, err)
		return nil, unexpected(err)
	}

	return &dto.CheckoutResponse{
		ClientSecret:       intent.ClientSecret,
		PaymentIntentID:    intent.ID,
		ChargedAmountCents: charged,
		TotalCents:         stay.TotalCents,
		Currency:           strings.ToUpper(property.Currency),
		PaymentType:        string(paymentType),
		ReservationCode:    code,
	}, nil
}

// CompleteGuestBooking chạy orchestrator với mã đã gắn vào payment intent
func (f *BookingFacade) CompleteGuestBooking(ctx context.Context, slug string, req dto.GuestReservationRequest) (*BookingResult, error) {
	property, err := f.availability.ResolveProperty(ctx, slug)
	if err != nil {
		return nil, err
	}
	if req.PaymentIntentID == "" || req.ReservationCode == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRequest, "Payment information is missing. Please restart the booking.", nil)
	}

	return f.bookings.CreateBooking(ctx, StayRequest{
		Property:   property,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Adults:     req.Adults,
		Children:   req.Children,
		Guest: GuestDetails{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		SpecialRequests:  req.SpecialRequests,
		ConfirmationCode: req.ReservationCode,
	}, NewGuestBooking(f.gateway, req.PaymentIntentID, f.logger))
}
