package models

import "time"

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusNoShow     ReservationStatus = "no_show"
)

type Channel string

const (
	ChannelDirect     Channel = "direct"
	ChannelBookingCom Channel = "booking_com"
	ChannelAirbnb     Channel = "airbnb"
	ChannelExpedia    Channel = "expedia"
	ChannelWalkIn     Channel = "walk_in"
	ChannelPhone      Channel = "phone"
)

// Channels liệt kê các kênh hợp lệ
var Channels = []Channel{ChannelDirect, ChannelBookingCom, ChannelAirbnb, ChannelExpedia, ChannelWalkIn, ChannelPhone}

func (c Channel) Valid() bool {
	for _, ch := range Channels {
		if ch == c {
			return true
		}
	}
	return false
}

// Reservation là một stay [CheckIn, CheckOut), CheckOut không phải đêm đã đặt
type Reservation struct {
	Base
	PropertyID         string            `json:"propertyId" gorm:"type:varchar(36);not null;index"`
	GuestID            string            `json:"guestId" gorm:"type:varchar(36);not null;index"`
	ConfirmationCode   string            `json:"confirmationCode" gorm:"type:varchar(16);uniqueIndex;not null"`
	Status             ReservationStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	Channel            Channel           `json:"channel" gorm:"type:varchar(16);not null;default:direct"`
	CheckIn            string            `json:"checkIn" gorm:"type:varchar(10);not null;index"`
	CheckOut           string            `json:"checkOut" gorm:"type:varchar(10);not null"`
	Nights             int               `json:"nights" gorm:"not null"`
	Adults             int               `json:"adults" gorm:"not null;default:1"`
	Children           int               `json:"children" gorm:"not null;default:0"`
	TotalCents         int64             `json:"totalCents" gorm:"not null"`
	Currency           string            `json:"currency" gorm:"type:varchar(3);not null"`
	SpecialRequests    string            `json:"specialRequests"`
	CancelledAt        *time.Time        `json:"cancelledAt"`
	CancellationReason string            `json:"cancellationReason"`
	CheckedInAt        *time.Time        `json:"checkedInAt"`
	CheckedOutAt       *time.Time        `json:"checkedOutAt"`
	Guest              *Guest            `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Property           *Property         `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Rooms              []ReservationRoom `json:"rooms,omitempty" gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	Payments           []Payment         `json:"payments,omitempty" gorm:"foreignKey:ReservationID"`
}

// ReservationRoom snapshot giá mỗi đêm tại thời điểm đặt
type ReservationRoom struct {
	Base
	ReservationID     string    `json:"reservationId" gorm:"type:varchar(36);not null;index"`
	RoomTypeID        string    `json:"roomTypeId" gorm:"type:varchar(36);not null;index"`
	RoomID            *string   `json:"roomId" gorm:"type:varchar(36)"`
	RatePerNightCents int64     `json:"ratePerNightCents" gorm:"not null"`
	RoomType          *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
}
