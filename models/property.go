package models

type PaymentMode string

const (
	PaymentModeFullAtBooking    PaymentMode = "full_at_booking"
	PaymentModeDepositAtBooking PaymentMode = "deposit_at_booking"
)

const (
	PropertyStatusActive   = "active"
	PropertyStatusInactive = "inactive"
)

type Property struct {
	Base
	Name              string      `json:"name" gorm:"not null"`
	Slug              string      `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	Description       string      `json:"description"`
	Address           string      `json:"address"`
	City              string      `json:"city"`
	Country           string      `json:"country"`
	Email             string      `json:"email"`
	Currency          string      `json:"currency" gorm:"type:varchar(3);default:EUR;not null"`
	Timezone          string      `json:"timezone" gorm:"default:UTC"`
	CheckInTime       string      `json:"checkInTime" gorm:"default:15:00"`
	CheckOutTime      string      `json:"checkOutTime" gorm:"default:11:00"`
	DepositPercentage int         `json:"depositPercentage" gorm:"default:30"`
	PaymentMode       PaymentMode `json:"paymentMode" gorm:"type:varchar(32);default:full_at_booking"`
	APIKeyHash        string      `json:"-"`
	Status            string      `json:"status" gorm:"type:varchar(16);default:active"`
	RoomTypes         []RoomType  `json:"roomTypes,omitempty" gorm:"foreignKey:PropertyID"`
}
