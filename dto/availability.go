package dto

import "staydesk/services/availability"

// AvailabilityRequest là body của POST /v1/properties/:slug/availability
type AvailabilityRequest struct {
	CheckIn  string `json:"checkIn" binding:"required,ymd"`
	CheckOut string `json:"checkOut" binding:"required,ymd"`
	Adults   int    `json:"adults" binding:"required,min=1,max=10"`
	Children int    `json:"children" binding:"min=0,max=10"`
}

// RoomTypeAvailability là một dòng kết quả tìm phòng
type RoomTypeAvailability struct {
	RoomTypeID        string `json:"roomTypeId"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Description       string `json:"description,omitempty"`
	MaxOccupancy      int    `json:"maxOccupancy"`
	Available         int    `json:"available"`
	RatePerNightCents int64  `json:"ratePerNightCents"`
	TotalCents        int64  `json:"totalCents"`
	Nights            int    `json:"nights"`
}

type AvailabilityResponse struct {
	CheckIn   string                 `json:"checkIn"`
	CheckOut  string                 `json:"checkOut"`
	Currency  string                 `json:"currency"`
	RoomTypes []RoomTypeAvailability `json:"roomTypes"`
}

// CalendarRoomType là lịch của một loại phòng trên dashboard
type CalendarRoomType struct {
	RoomTypeID    string                             `json:"roomTypeId"`
	RoomTypeName  string                             `json:"roomTypeName"`
	BaseRateCents int64                              `json:"baseRateCents"`
	Dates         []availability.NightlyAvailability `json:"dates"`
}

type CalendarQuery struct {
	Start string `form:"start" binding:"required,ymd"`
	End   string `form:"end" binding:"required,ymd"`
}
