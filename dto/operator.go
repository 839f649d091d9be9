package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      int       `json:"role"`
}

// RateOverrideRequest: rateCents null thì xóa giá ghim
type RateOverrideRequest struct {
	RateCents *int64 `json:"rateCents" binding:"omitempty,min=0"`
}

type BlockRequest struct {
	Units int `json:"units" binding:"min=0"`
}

type CreatePropertyRequest struct {
	Name              string `json:"name" binding:"required,max=200"`
	Description       string `json:"description" binding:"max=5000"`
	Address           string `json:"address" binding:"max=500"`
	City              string `json:"city" binding:"max=120"`
	Country           string `json:"country" binding:"max=120"`
	Email             string `json:"email" binding:"omitempty,email"`
	Currency          string `json:"currency" binding:"omitempty,len=3"`
	Timezone          string `json:"timezone" binding:"omitempty,timezone"`
	CheckInTime       string `json:"checkInTime" binding:"omitempty,datetime=15:04"`
	CheckOutTime      string `json:"checkOutTime" binding:"omitempty,datetime=15:04"`
	DepositPercentage *int   `json:"depositPercentage" binding:"omitempty,min=0,max=100"`
	PaymentMode       string `json:"paymentMode" binding:"omitempty,oneof=full_at_booking deposit_at_booking"`
}

// PropertyCreatedResponse trả về API key thô đúng một lần
type PropertyCreatedResponse struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	APIKey string `json:"apiKey"`
}

type APIKeyResponse struct {
	APIKey string `json:"apiKey"`
}

type CreateRoomTypeRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Description   string `json:"description" binding:"max=5000"`
	BaseOccupancy int    `json:"baseOccupancy" binding:"omitempty,min=1,max=20"`
	MaxOccupancy  int    `json:"maxOccupancy" binding:"required,min=1,max=20"`
	BaseRateCents int64  `json:"baseRateCents" binding:"min=0"`
	SortOrder     int    `json:"sortOrder"`
}

type CreateRoomRequest struct {
	RoomTypeID string `json:"roomTypeId" binding:"required,uuid"`
	Name       string `json:"name" binding:"required,max=50"`
	Floor      string `json:"floor" binding:"max=20"`
}

type BackfillResponse struct {
	RoomTypes int    `json:"roomTypes"`
	Days      int    `json:"days"`
	From      string `json:"from"`
}

type CaptureResponse struct {
	PaymentID     string `json:"paymentId"`
	Status        string `json:"status"`
	CapturedCents int64  `json:"capturedCents"`
}

type CreateRatePlanRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	DateStart string `json:"dateStart" binding:"required,ymd"`
	DateEnd   string `json:"dateEnd" binding:"required,ymd"`
	RateCents int64  `json:"rateCents" binding:"min=0"`
	Priority  int    `json:"priority"`
}

type RefundRequest struct {
	AmountCents *int64 `json:"amountCents" binding:"omitempty,min=1"`
}

type CreateOperatorRequest struct {
	Name       string  `json:"name" binding:"required,max=200"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       int     `json:"role" binding:"required,oneof=1 2 3"`
	PropertyID *string `json:"propertyId" binding:"omitempty,uuid"`
}

type OperatorResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       int     `json:"role"`
	PropertyID *string `json:"propertyId,omitempty"`
}
