package dto

// GuestSearch là tham số của guest flow, lưu theo session
type GuestSearch struct {
	CheckIn    string `json:"checkIn" form:"check_in" binding:"omitempty,ymd"`
	CheckOut   string `json:"checkOut" form:"check_out" binding:"omitempty,ymd"`
	Adults     *int   `json:"adults,omitempty" form:"adults" binding:"omitempty,min=1,max=10"`
	Children   *int   `json:"children,omitempty" form:"children" binding:"omitempty,min=0,max=10"`
	RoomTypeID string `json:"roomTypeId,omitempty" form:"room_type_id" binding:"omitempty,uuid"`
}

// AdultsOr trả về số người lớn hoặc giá trị mặc định
func (s *GuestSearch) AdultsOr(def int) int {
	if s.Adults == nil {
		return def
	}
	return *s.Adults
}

func (s *GuestSearch) ChildrenOr(def int) int {
	if s.Children == nil {
		return def
	}
	return *s.Children
}

// GuestStepQuery là query của GET /book/:slug
type GuestStepQuery struct {
	GuestSearch
	Step string `form:"step" binding:"omitempty,oneof=search select details confirm complete"`
	Code string `form:"code"`
}

// GuestStepResponse là payload JSON cho từng bước của guest flow
type GuestStepResponse struct {
	Step     string       `json:"step"`
	Property interface{}  `json:"property"`
	Search   *GuestSearch `json:"search,omitempty"`
	Data     interface{}  `json:"data,omitempty"`
	Next     string       `json:"next,omitempty"`
	Message  string       `json:"message,omitempty"`
}

// CheckoutRequest là body của POST /book/:slug/checkout
type CheckoutRequest struct {
	RoomTypeID string `json:"roomTypeId" binding:"required,uuid"`
	CheckIn    string `json:"checkIn" binding:"required,ymd"`
	CheckOut   string `json:"checkOut" binding:"required,ymd"`
	Adults     int    `json:"adults" binding:"required,min=1,max=10"`
	Children   int    `json:"children" binding:"min=0,max=10"`
}

type CheckoutResponse struct {
	ClientSecret       string `json:"clientSecret"`
	PaymentIntentID    string `json:"paymentIntentId"`
	ChargedAmountCents int64  `json:"chargedAmountCents"`
	TotalCents         int64  `json:"totalCents"`
	Currency           string `json:"currency"`
	PaymentType        string `json:"paymentType"`
	ReservationCode    string `json:"reservationCode"`
}

// GuestReservationRequest là body của POST /book/:slug/reservations
type GuestReservationRequest struct {
	RoomTypeID      string `json:"roomTypeId" binding:"required,uuid"`
	CheckIn         string `json:"checkIn" binding:"required,ymd"`
	CheckOut        string `json:"checkOut" binding:"required,ymd"`
	Adults          int    `json:"adults" binding:"required,min=1,max=10"`
	Children        int    `json:"children" binding:"min=0,max=10"`
	FirstName       string `json:"firstName" binding:"required,max=100"`
	LastName        string `json:"lastName" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email,max=320"`
	Phone           string `json:"phone" binding:"omitempty,max=40"`
	SpecialRequests string `json:"specialRequests" binding:"max=2000"`
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	ReservationCode string `json:"reservationCode" binding:"required"`
}

type GuestReservationResponse struct {
	ConfirmationCode string `json:"confirmationCode"`
	Next             string `json:"next"`
}

// GuestSelection là loại phòng đã chọn ở bước details/confirm
type GuestSelection struct {
	RoomType   RoomTypeResponse `json:"roomType"`
	Nights     int              `json:"nights,omitempty"`
	TotalCents int64            `json:"totalCents,omitempty"`
	Currency   string           `json:"currency,omitempty"`
	Available  *bool            `json:"available,omitempty"`
}
