package dto

import (
	"time"

	"staydesk/models"
)

// GuestInput là thông tin guest trong request đặt phòng
type GuestInput struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=320"`
	Phone     string `json:"phone" binding:"omitempty,max=40"`
}

// CreateReservationRequest là body của POST /v1/reservations
type CreateReservationRequest struct {
	PropertySlug    string         `json:"propertySlug" binding:"required,max=120"`
	RoomTypeID      string         `json:"roomTypeId" binding:"required,uuid"`
	CheckIn         string         `json:"checkIn" binding:"required,ymd"`
	CheckOut        string         `json:"checkOut" binding:"required,ymd"`
	Adults          int            `json:"adults" binding:"required,min=1,max=10"`
	Children        int            `json:"children" binding:"min=0,max=10"`
	Channel         models.Channel `json:"channel" binding:"omitempty,channel"`
	Guest           GuestInput     `json:"guest"`
	SpecialRequests string         `json:"specialRequests" binding:"max=2000"`
}

// ReservationCreatedResponse trả về khi tạo reservation thành công
type ReservationCreatedResponse struct {
	ConfirmationCode string `json:"confirmationCode"`
	ReservationID    string `json:"reservationId"`
	TotalCents       int64  `json:"totalCents"`
	Currency         string `json:"currency"`
	Nights           int    `json:"nights"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ReservationGuestResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type ReservationRoomResponse struct {
	RoomTypeID        string  `json:"roomTypeId"`
	RoomTypeName      string  `json:"roomTypeName,omitempty"`
	RoomID            *string `json:"roomId,omitempty"`
	RatePerNightCents int64   `json:"ratePerNightCents"`
}

type PaymentResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	AmountCents int64      `json:"amountCents"`
	Currency    string     `json:"currency"`
	CapturedAt  *time.Time `json:"capturedAt,omitempty"`
	RefundedAt  *time.Time `json:"refundedAt,omitempty"`
}

// ReservationResponse là chi tiết reservation
type ReservationResponse struct {
	ID                 string                    `json:"id"`
	ConfirmationCode   string                    `json:"confirmationCode"`
	Status             string                    `json:"status"`
	Channel            string                    `json:"channel"`
	PropertyID         string                    `json:"propertyId"`
	PropertyName       string                    `json:"propertyName,omitempty"`
	CheckIn            string                    `json:"checkIn"`
	CheckOut           string                    `json:"checkOut"`
	Nights             int                       `json:"nights"`
	Adults             int                       `json:"adults"`
	Children           int                       `json:"children"`
	TotalCents         int64                     `json:"totalCents"`
	Currency           string                    `json:"currency"`
	SpecialRequests    string                    `json:"specialRequests,omitempty"`
	CancelledAt        *time.Time                `json:"cancelledAt,omitempty"`
	CancellationReason string                    `json:"cancellationReason,omitempty"`
	CheckedInAt        *time.Time                `json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time                `json:"checkedOutAt,omitempty"`
	Guest              *ReservationGuestResponse `json:"guest,omitempty"`
	Rooms              []ReservationRoomResponse `json:"rooms"`
	Payments           []PaymentResponse         `json:"payments"`
	CreatedAt          time.Time                 `json:"createdAt"`
}

// NewReservationResponse chuyển model sang response
func NewReservationResponse(r *models.Reservation) ReservationResponse {
	res := ReservationResponse{
		ID:                 r.ID,
		ConfirmationCode:   r.ConfirmationCode,
		Status:             string(r.Status),
		Channel:            string(r.Channel),
		PropertyID:         r.PropertyID,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		Nights:             r.Nights,
		Adults:             r.Adults,
		Children:           r.Children,
		TotalCents:         r.TotalCents,
		Currency:           r.Currency,
		SpecialRequests:    r.SpecialRequests,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CheckedInAt:        r.CheckedInAt,
		CheckedOutAt:       r.CheckedOutAt,
		Rooms:              []ReservationRoomResponse{},
		Payments:           []PaymentResponse{},
		CreatedAt:          r.CreatedAt,
	}
	if r.Property != nil {
		res.PropertyName = r.Property.Name
	}
	if r.Guest != nil {
		res.Guest = &ReservationGuestResponse{
			FirstName: r.Guest.FirstName,
			LastName:  r.Guest.LastName,
			Email:     r.Guest.Email,
			Phone:     r.Guest.Phone,
		}
	}
	for _, room := range r.Rooms {
		item := ReservationRoomResponse{
			RoomTypeID:        room.RoomTypeID,
			RoomID:            room.RoomID,
			RatePerNightCents: room.RatePerNightCents,
		}
		if room.RoomType != nil {
			item.RoomTypeName = room.RoomType.Name
		}
		res.Rooms = append(res.Rooms, item)
	}
	for i := range r.Payments {
		res.Payments = append(res.Payments, NewPaymentResponse(&r.Payments[i]))
	}
	return res
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		Type:        string(p.Type),
		Status:      string(p.Status),
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		CapturedAt:  p.CapturedAt,
		RefundedAt:  p.RefundedAt,
	}
}
