package models

type RatePlanType string

const (
	RatePlanSeasonal     RatePlanType = "seasonal"
	RatePlanLengthOfStay RatePlanType = "length_of_stay"
	RatePlanOccupancy    RatePlanType = "occupancy"
)

const (
	RatePlanStatusActive   = "active"
	RatePlanStatusInactive = "inactive"
)

// RatePlan ghi đè giá cơ bản trong khoảng [DateStart, DateEnd], priority cao thắng
type RatePlan struct {
	Base
	PropertyID string       `json:"propertyId" gorm:"type:varchar(36);not null;index"`
	RoomTypeID string       `json:"roomTypeId" gorm:"type:varchar(36);not null;index"`
	Name       string       `json:"name"`
	Type       RatePlanType `json:"type" gorm:"type:varchar(32);default:seasonal"`
	DateStart  *string      `json:"dateStart" gorm:"type:varchar(10)"`
	DateEnd    *string      `json:"dateEnd" gorm:"type:varchar(10)"`
	MinNights  int          `json:"minNights" gorm:"default:1"`
	RateCents  int64        `json:"rateCents" gorm:"not null"`
	Priority   int          `json:"priority" gorm:"default:0"`
	Status     string       `json:"status" gorm:"type:varchar(16);default:active"`
}
