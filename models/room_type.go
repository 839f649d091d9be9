package models

const (
	RoomTypeStatusActive   = "active"
	RoomTypeStatusInactive = "inactive"
)

// RoomType là loại phòng bán được trong một property
type RoomType struct {
	Base
	PropertyID    string `json:"propertyId" gorm:"type:varchar(36);not null;uniqueIndex:idx_room_type_slug"`
	Name          string `json:"name" gorm:"not null"`
	Slug          string `json:"slug" gorm:"type:varchar(120);not null;uniqueIndex:idx_room_type_slug"`
	Description   string `json:"description"`
	BaseOccupancy int    `json:"baseOccupancy" gorm:"default:2"`
	MaxOccupancy  int    `json:"maxOccupancy" gorm:"default:2"`
	BaseRateCents int64  `json:"baseRateCents" gorm:"not null"`
	SortOrder     int    `json:"sortOrder" gorm:"default:0"`
	Status        string `json:"status" gorm:"type:varchar(16);default:active"`
}

// Fits kiểm tra loại phòng có chứa được số khách không
func (rt *RoomType) Fits(adults, children int) bool {
	return rt.MaxOccupancy <= 0 || adults+children <= rt.MaxOccupancy
}
