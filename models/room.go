package models

import "fmt"

const (
	RoomStatusAvailable    = "available"
	RoomStatusMaintenance  = "maintenance"
	RoomStatusOutOfService = "out_of_service"
)

// Room là phòng vật lý, số phòng theo loại quyết định total_units của ledger
type Room struct {
	Base
	PropertyID string   `json:"propertyId" gorm:"type:varchar(36);not null;index"`
	RoomTypeID string   `json:"roomTypeId" gorm:"type:varchar(36);not null;index"`
	Name       string   `json:"name" gorm:"not null"`
	Floor      string   `json:"floor"`
	Status     string   `json:"status" gorm:"type:varchar(16);default:available"`
	RoomType   RoomType `json:"-" gorm:"foreignKey:RoomTypeID"`
}

func (r *Room) ValidateStatus() error {
	switch r.Status {
	case "", RoomStatusAvailable, RoomStatusMaintenance, RoomStatusOutOfService:
		return nil
	}
	return fmt.Errorf("invalid room status: %s", r.Status)
}
